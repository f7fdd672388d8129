package mincostflow

import "errors"

var (
	// ErrUnknownNode is returned when an arc references a node not added to the network.
	ErrUnknownNode = errors.New("mincostflow: unknown node")
	// ErrNegativeCapacity is returned when AddArc is given a negative capacity.
	ErrNegativeCapacity = errors.New("mincostflow: negative capacity")
	// ErrNegativeCost is returned when AddArc is given a negative cost; the SSP
	// solver requires non-negative original costs so that reduced costs stay
	// non-negative under Johnson's potentials.
	ErrNegativeCost = errors.New("mincostflow: negative cost")
	// ErrNoSuperSource is returned by Solve if Build never registered a source node.
	ErrNoSuperSource = errors.New("mincostflow: no source node")
	// ErrNoSuperSink is returned by Solve if Build never registered a sink node.
	ErrNoSuperSink = errors.New("mincostflow: no sink node")
)

// Options configures a Solve run.
type Options struct {
	// SourceCap overrides the capacity on each super-source arc. A value of
	// 0 selects the spec default of max(len(sinks), 1), computed by the
	// caller that builds the Network (see Build).
	SourceCap int64
}

// Option mutates Options.
type Option func(*Options)

// WithSourceCap sets an explicit super-source arc capacity.
func WithSourceCap(cap int64) Option {
	return func(o *Options) { o.SourceCap = cap }
}

// DefaultOptions returns the zero-value Options (SourceCap resolved by the caller).
func DefaultOptions() Options {
	return Options{}
}

// Result is the outcome of a successful Solve.
type Result struct {
	// MaxFlow is the total flow pushed from source to sink.
	MaxFlow int64
	// MinCost is the sum of cost*flow over every arc carrying flow.
	MinCost int64
	// ArcFlow maps an arc's index (as returned by AddArc) to the flow it carries.
	ArcFlow map[int]int64
}
