package align

import (
	"math"

	"github.com/alassgo/alass/timespan"
)

// Line is a single subtitle line: a half-open time interval that is shifted,
// never resized, by the solver.
type Line = timespan.Span

// Track is an ordered sequence of Lines. The incorrect track must be sorted
// by Start; the reference track need not be.
type Track = []timespan.Span

// Progress is invoked once per DP phase, after phase n has been solved, with
// the 1-based phase number and the total phase count. It must not block or
// retain the slices passed to Align; returning is the only way to influence
// the solver (there is no cancellation return value, per the single-threaded,
// synchronous model).
type Progress func(phase, total int)

// Options configures a single Align call. Build one with DefaultOptions and
// the With* functions below.
type Options struct {
	SplitPenalty  float64
	TimeHorizon   timespan.Timestamp
	Progress      Progress
	ClampNegative bool

	invalidSplitPenalty bool
	invalidTimeHorizon  bool
}

// Option is a functional option for Align.
type Option func(*Options)

// DefaultOptions returns the baseline Options: no split bonus, an
// automatically derived time horizon, no progress callback, and negative
// corrected timestamps rejected rather than clamped (the solver searches
// only [0, horizon], so they do not occur for any TimeHorizon).
func DefaultOptions() Options {
	return Options{
		SplitPenalty:  0,
		TimeHorizon:   0,
		Progress:      nil,
		ClampNegative: false,
	}
}

// WithSplitPenalty sets the caller-facing split bonus, documented as a value
// in [0, 100]; larger values favor preserving the incorrect track's original
// inter-line spacing over chasing a marginally better overlap. A negative or
// non-finite value is recorded and surfaced by Align as ErrInvalidSplitPenalty
// rather than rejected here, so option application never panics on caller
// input.
func WithSplitPenalty(p float64) Option {
	return func(o *Options) {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			o.invalidSplitPenalty = true
			return
		}
		o.SplitPenalty = p
	}
}

// WithTimeHorizon overrides the automatically derived T_MAX. A negative value
// is recorded and surfaced by Align as ErrInvalidTimeHorizon; zero (the
// default) means "derive from the input tracks".
func WithTimeHorizon(t timespan.Timestamp) Option {
	return func(o *Options) {
		if t < 0 {
			o.invalidTimeHorizon = true
			return
		}
		o.TimeHorizon = t
	}
}

// WithProgress registers a per-phase progress callback.
func WithProgress(p Progress) Option {
	return func(o *Options) {
		o.Progress = p
	}
}

// WithClampNegative clamps any corrected start below zero to zero instead of
// failing. The solver's own search domain starts at zero for every
// TimeHorizon, so a negative corrected start does not arise and this option
// leaves ordinary results unchanged.
func WithClampNegative() Option {
	return func(o *Options) {
		o.ClampNegative = true
	}
}
