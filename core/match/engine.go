package match

import (
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDateWindow bounds the NameDate tier when no window is configured.
const DefaultDateWindow = 7 * 24 * time.Hour

// Options configures a reconciliation run.
type Options struct {
	// DateWindow is the maximum distance between a primary timestamp and a
	// secondary start time for the NameDate tier. Inclusive.
	DateWindow time.Duration `mapstructure:"date_window" default:"168h"`

	// Workers bounds the matching worker pool. Zero or one runs sequentially.
	Workers int `mapstructure:"workers" default:"0"`
}

// DefaultOptions returns a seven day window with sequential matching.
func DefaultOptions() Options {
	return Options{DateWindow: DefaultDateWindow}
}

// Validate reports a ConfigurationError for unusable options.
func (o Options) Validate() error {
	if o.DateWindow < 0 {
		return &ConfigurationError{Field: "date_window", Value: o.DateWindow, Reason: "must not be negative"}
	}
	if o.Workers < 0 {
		return &ConfigurationError{Field: "workers", Value: o.Workers, Reason: "must not be negative"}
	}
	return nil
}

// Engine drives the matcher over whole collections.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts, logger: logger}, nil
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Run reconciles every primary record against the secondary collection and
// returns one result per primary record, in input order. The index is rebuilt
// on every call and discarded when it returns.
func (e *Engine) Run(primary []PrimaryRecord, secondary []SecondaryRecord) (*Report, error) {
	start := time.Now()

	index := BuildIndex(secondary)
	e.logger.Debug("built secondary index",
		zap.Int("records", index.Len()),
		zap.Int("references", len(index.ByReference)),
		zap.Int("emails", len(index.ByEmail)),
		zap.Int("phones", len(index.ByPhone)),
	)

	matcher := NewMatcher(index, e.opts.DateWindow)
	results := make([]MatchResult, len(primary))

	if e.opts.Workers > 1 && len(primary) > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < min(e.opts.Workers, len(primary)); w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = resolve(matcher, primary[i])
				}
			}()
		}
		for i := range primary {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := range primary {
			results[i] = resolve(matcher, primary[i])
		}
	}

	summary := Summary{
		TotalPrimary:   len(primary),
		TotalSecondary: len(secondary),
	}
	for _, r := range results {
		summary.add(r.Tier)
	}

	e.logger.Debug("reconciliation finished",
		zap.Int("total_primary", summary.TotalPrimary),
		zap.Int("matched", summary.Matched()),
		zap.Int("unmatched", summary.Unmatched),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Report{Summary: summary, Results: results}, nil
}

// Run reconciles with the given options and no logging.
func Run(opts Options, primary []PrimaryRecord, secondary []SecondaryRecord) (*Report, error) {
	e, err := New(opts, nil)
	if err != nil {
		return nil, err
	}
	return e.Run(primary, secondary)
}

func resolve(m *Matcher, p PrimaryRecord) MatchResult {
	tier, matches := m.Match(p)

	result := MatchResult{
		PrimaryID:  p.ID,
		Matched:    len(matches) > 0,
		Tier:       tier,
		Tiers:      []Tier{},
		Matches:    matches,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Timestamp:  p.Timestamp,
		Attributes: maps.Clone(p.Attributes),
	}
	if result.Matched {
		result.Tiers = append(result.Tiers, tier)
	} else {
		result.Matches = []SecondaryRecord{}
	}
	return result
}
