package source

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"intake-reconciler/core/match"
	"intake-reconciler/core/utils"

	"github.com/jmespath/go-jmespath"
)

// Collection names used in decode errors.
const (
	CollectionPrimary   = "primary"
	CollectionSecondary = "secondary"
)

// DecodePrimary decodes a raw document into primary records using the mapping.
func DecodePrimary(data []byte, m Mapping) ([]match.PrimaryRecord, error) {
	elements, cm, err := decodeElements(CollectionPrimary, data, m)
	if err != nil {
		return nil, err
	}

	out := make([]match.PrimaryRecord, 0, len(elements))
	for _, el := range elements {
		r := match.PrimaryRecord{
			ID:       cm.str(FieldID, el),
			Name:     cm.str(FieldName, el),
			Email:    cm.str(FieldEmail, el),
			Phone:    cm.str(FieldPhone, el),
			AltPhone: cm.str(FieldAltPhone, el),
		}
		r.Timestamp = cm.instant(FieldTimestamp, el)
		if len(cm.extras) > 0 {
			r.Attributes = make(map[string]string, len(cm.extras))
			for name, exprs := range cm.extras {
				if v := first(exprs, el); v != "" {
					r.Attributes[name] = v
				}
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodeSecondary decodes a raw document into secondary records using the mapping.
func DecodeSecondary(data []byte, m Mapping) ([]match.SecondaryRecord, error) {
	elements, cm, err := decodeElements(CollectionSecondary, data, m)
	if err != nil {
		return nil, err
	}

	out := make([]match.SecondaryRecord, 0, len(elements))
	for _, el := range elements {
		out = append(out, match.SecondaryRecord{
			ID:              cm.str(FieldID, el),
			BackReferenceID: cm.str(FieldBackReference, el),
			Name:            cm.str(FieldName, el),
			Email:           cm.str(FieldEmail, el),
			Phone:           cm.str(FieldPhone, el),
			StartTime:       cm.instant(FieldStartTime, el),
		})
	}
	return out, nil
}

func decodeElements(collection string, data []byte, m Mapping) ([]map[string]any, *compiledMapping, error) {
	cm, err := m.compile()
	if err != nil {
		return nil, nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, &match.InputShapeError{Collection: collection, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	target := doc
	if cm.collection != nil {
		if _, isObject := doc.(map[string]any); !isObject {
			return nil, nil, &match.InputShapeError{Collection: collection, Reason: fmt.Sprintf("expected an object holding %q", m.Collection)}
		}
		target, err = cm.collection.Search(doc)
		if err != nil {
			return nil, nil, &match.InputShapeError{Collection: collection, Reason: err.Error()}
		}
		if target == nil {
			return nil, nil, &match.InputShapeError{Collection: collection, Reason: fmt.Sprintf("missing %q", m.Collection)}
		}
	}

	items, ok := target.([]any)
	if !ok {
		return nil, nil, &match.InputShapeError{Collection: collection, Reason: "collection is not an array"}
	}

	elements := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, nil, &match.InputShapeError{Collection: collection, Reason: fmt.Sprintf("element %d is not an object", i)}
		}
		elements = append(elements, obj)
	}
	return elements, cm, nil
}

func (cm *compiledMapping) str(field string, el map[string]any) string {
	return first(cm.fields[field], el)
}

func (cm *compiledMapping) instant(field string, el map[string]any) time.Time {
	for _, expr := range cm.fields[field] {
		v, err := expr.Search(el)
		if err != nil {
			continue
		}
		if t, ok := utils.ToTime(v); ok {
			return t
		}
	}
	return time.Time{}
}

// first returns the first non-empty string any expression yields.
func first(exprs []*jmespath.JMESPath, el map[string]any) string {
	for _, expr := range exprs {
		v, err := expr.Search(el)
		if err != nil {
			continue
		}
		if s := strings.TrimSpace(utils.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}
