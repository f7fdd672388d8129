// Package netgeom computes, for every net in a layout, the set of points
// from which its signal departs into the censored upper layers ("end
// points") and the axis-aligned region each end point could plausibly
// extend into ("direction rectangles"). This is the geometric half of the
// feasibility cascade in internal/distmatrix (case 4).
package netgeom

import (
	"fmt"
	"sort"

	"github.com/opensplit/feolattack/internal/model"
)

// EmptyNetDirection controls how a net with zero end-points is handled
// (spec.md §9 open question: the reference source defaults permissively to
// the whole die area).
type EmptyNetDirection int

const (
	// DieArea gives a net with no end points a single direction rectangle
	// covering the entire die area (the net still reports no end points)
	// — the reference source's behavior, preserved as the default.
	DieArea EmptyNetDirection = iota
	// Empty disables case 4 for such a net by reporting zero rectangles,
	// which a caller can interpret as "direction-incompatible with
	// everything" if it chooses a strict interpretation.
	Empty
)

// Options configures Analyze.
type Options struct {
	EmptyNet EmptyNetDirection
}

// Option mutates Options.
type Option func(*Options)

// WithEmptyNetDirection overrides the zero-end-point default.
func WithEmptyNetDirection(d EmptyNetDirection) Option {
	return func(o *Options) { o.EmptyNet = d }
}

func defaultOptions() Options { return Options{EmptyNet: DieArea} }

// Geometry is the per-net output of Analyze.
type Geometry struct {
	// EndPoints is the set of points from which the net's signal departs
	// into the missing layers, deduplicated.
	EndPoints []model.Point
	// Adjacency maps each routed point to every other point appearing in
	// the same route segment (§4.2).
	Adjacency map[model.Point][]model.Point
	// Rectangles holds one reachable direction rectangle per end point,
	// in the same order as EndPoints (or a single die-area rectangle if
	// EndPoints is empty and Options.EmptyNet is DieArea).
	Rectangles []model.DieArea
}

// Analyze computes Geometry for every net in layout. Via end points are
// recognised against the "top FEOL layer" — the last layer the untrusted
// foundry fabricated; if no net has a route on a known layer, no via end
// points are found and only primary-pin end points are reported.
func Analyze(layout *model.Layout, opts ...Option) (map[string]*Geometry, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	topLayer, hasTop := layout.TopFEOLLayer()
	var topRank int
	if hasTop {
		topRank, _ = layout.Layers.Rank(topLayer)
	}
	climbingVia := fmt.Sprintf("via%d", topRank)

	out := make(map[string]*Geometry, len(layout.Nets()))
	for _, net := range layout.Nets() {
		g, err := analyzeNet(layout, net, climbingVia, hasTop, cfg)
		if err != nil {
			return nil, fmt.Errorf("netgeom: net %s: %w", net.Name, err)
		}
		out[net.Name] = g
	}
	return out, nil
}

func analyzeNet(layout *model.Layout, net *model.Net, climbingVia string, hasTop bool, cfg Options) (*Geometry, error) {
	adjacency := make(map[model.Point][]model.Point)
	for _, seg := range net.Segments {
		for i, p := range seg.Points {
			for j, q := range seg.Points {
				if i == j {
					continue
				}
				adjacency[p] = appendUnique(adjacency[p], q)
			}
		}
	}

	seen := make(map[model.Point]bool)
	var endPoints []model.Point
	addEndPoint := func(p model.Point) {
		if !seen[p] {
			seen[p] = true
			endPoints = append(endPoints, p)
		}
	}

	if hasTop {
		for _, seg := range net.Segments {
			if seg.EndVia != nil && seg.EndVia.Name == climbingVia {
				addEndPoint(seg.EndVia.Point)
			}
		}
	}

	for _, ref := range net.CompPins {
		if !ref.IsPrimary() {
			continue
		}
		pin, ok := layout.PrimaryPin(ref.Pin)
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownPrimaryPin, ref.Pin)
		}
		addEndPoint(pin.Point)
	}

	sort.Slice(endPoints, func(i, j int) bool {
		if endPoints[i].X != endPoints[j].X {
			return endPoints[i].X < endPoints[j].X
		}
		return endPoints[i].Y < endPoints[j].Y
	})

	rects := make([]model.DieArea, 0, len(endPoints))
	for _, e := range endPoints {
		rects = append(rects, directionRectangle(layout.DieArea, e, adjacency[e]))
	}
	if len(endPoints) == 0 && cfg.EmptyNet == DieArea {
		rects = append(rects, layout.DieArea)
	}

	return &Geometry{EndPoints: endPoints, Adjacency: adjacency, Rectangles: rects}, nil
}

// directionRectangle narrows die down to the region a continuation wire
// from e could reach without doubling back through metal already present,
// per the per-neighbor Δx/Δy rule of §4.2.
func directionRectangle(die model.DieArea, e model.Point, neighbors []model.Point) model.DieArea {
	r := die
	for _, n := range neighbors {
		dx := n.X - e.X
		dy := n.Y - e.Y
		switch {
		case dx > 0:
			r.Max.X = min64(r.Max.X, e.X)
		case dx < 0:
			r.Min.X = max64(r.Min.X, e.X)
		}
		switch {
		case dy > 0:
			r.Max.Y = min64(r.Max.Y, e.Y)
		case dy < 0:
			r.Min.Y = max64(r.Min.Y, e.Y)
		}
	}
	return r
}

func appendUnique(list []model.Point, p model.Point) []model.Point {
	for _, q := range list {
		if q == p {
			return list
		}
	}
	return append(list, p)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
