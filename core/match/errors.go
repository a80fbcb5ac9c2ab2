package match

import (
	"errors"
	"fmt"
)

var (
	// ErrInputShape is wrapped by every InputShapeError.
	ErrInputShape = errors.New("malformed input collection")
	// ErrConfiguration is wrapped by every ConfigurationError.
	ErrConfiguration = errors.New("invalid match configuration")
)

// InputShapeError reports a collection that is not the expected sequence shape,
// so callers can tell "zero records" apart from "malformed input".
type InputShapeError struct {
	// Collection names the offending input ("primary" or "secondary").
	Collection string
	// Reason describes what was wrong.
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("%s collection: %s", e.Collection, e.Reason)
}

func (e *InputShapeError) Unwrap() error {
	return ErrInputShape
}

// ConfigurationError reports an invalid engine option.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
