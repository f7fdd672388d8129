// Package splitter implements C8, the Layout Splitter: given a complete
// post-route layout and a split layer, it produces the partial FEOL-only
// (or BEOL-only) view an attacker would actually observe, by dropping
// route segments above/below the split and regrouping what remains into
// possibly-fragmented sub-nets. This is the inverse direction of the
// attack itself — it manufactures the kind of input internal/netgeom and
// internal/distmatrix reconstruct from — and is optional tooling for
// generating test layouts and for round-tripping a full design through
// the attack to measure reconstruction accuracy.
package splitter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath/bfs"
	core "github.com/katalvlaran/lvlath/core"
	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/unionfind"
)

// ErrGroupUnreachable is returned when a segment group the union-find
// merged fails its BFS reachability cross-check (see verifyGroupConnected).
// This should never trigger given how kept segments are grouped; it exists
// as a defensive second opinion on the union-find result, not a second
// mechanism for performing the merge.
var ErrGroupUnreachable = errors.New("splitter: via-pitch group failed bfs reachability cross-check")

// Options configures Split.
type Options struct {
	// ViaPitch is the axis-aligned offset between a route point and a
	// primary pin's location at which the point is considered a connection
	// to that pin (§split_def.py's connected_primary_pin_route, which
	// checks the four axis-aligned neighbors at exactly this distance).
	ViaPitch int64
}

// Option mutates Options.
type Option func(*Options)

// WithViaPitch overrides the default via-to-pin connection distance.
func WithViaPitch(d int64) Option {
	return func(o *Options) { o.ViaPitch = d }
}

func defaultOptions() Options { return Options{ViaPitch: DefaultViaPitch} }

// Split returns a new Layout containing only what's visible under the
// given layer keep-set: nets entirely within goodLayers pass through
// unchanged; nets that cross the split are fragmented into sub-nets, one
// per surviving connected-component of route segments, named
// "<original>_<n>". A segment ending in the via that bridges the split
// layer survives as a single-point stub even though its own layer is
// filtered out, since the via body itself is observable at the boundary.
func Split(layout *model.Layout, goodLayers map[string]bool, splitLayer string, opts ...Option) (*model.Layout, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	boundaryVia, err := boundaryViaName(splitLayer)
	if err != nil {
		return nil, err
	}

	out := model.NewLayout(layout.Library(), layout.Design, layout.DieArea, layout.Layers)
	for _, c := range layout.Components() {
		if err := out.AddComponent(c); err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}
	}
	for _, p := range layout.PrimaryPins() {
		if err := out.AddPrimaryPin(p); err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}
	}

	for _, net := range layout.Nets() {
		inside := len(net.Segments) > 0
		for _, seg := range net.Segments {
			if !goodLayers[seg.Layer] {
				inside = false
				break
			}
		}
		if inside {
			if err := out.AddNet(net); err != nil {
				return nil, fmt.Errorf("splitter: net %s: %w", net.Name, err)
			}
			continue
		}

		fragments, err := fragmentNet(layout, net, goodLayers, boundaryVia, cfg.ViaPitch)
		if err != nil {
			return nil, fmt.Errorf("splitter: net %s: %w", net.Name, err)
		}
		for _, frag := range fragments {
			if err := out.AddNet(frag); err != nil {
				return nil, fmt.Errorf("splitter: net %s: %w", net.Name, err)
			}
		}
	}

	return out, nil
}

// boundaryViaName returns the name of the via that bridges splitLayer to
// the layer directly below it, e.g. "metal2" → "via1".
func boundaryViaName(splitLayer string) (string, error) {
	n := strings.TrimPrefix(splitLayer, "metal")
	idx, err := strconv.Atoi(n)
	if err != nil {
		return "", fmt.Errorf("splitter: split layer %q is not a numbered metal layer", splitLayer)
	}
	return fmt.Sprintf("via%d", idx-1), nil
}

func netTopLayer(net *model.Net, order model.LayerOrder) (string, bool) {
	best := ""
	found := false
	for _, seg := range net.Segments {
		if _, ok := order.Rank(seg.Layer); !ok {
			continue
		}
		if !found || order.Less(best, seg.Layer) {
			best = seg.Layer
			found = true
		}
	}
	return best, found
}

// fragmentNet keeps the route segments of net that survive the layer
// filter (plus boundary-via stubs), groups them into connected components
// (two segments are joined only when they share an identical point; points
// that merely lie within the via pitch of each other are not joined),
// and assigns each original comp/pin reference to whichever component its
// geometry reaches — possibly none, in which case the reference is
// dropped (it was only reachable through layers no longer present).
func fragmentNet(layout *model.Layout, net *model.Net, goodLayers map[string]bool, boundaryVia string, viaPitch int64) ([]*model.Net, error) {
	var kept []model.RouteSegment
	for _, seg := range net.Segments {
		switch {
		case goodLayers[seg.Layer]:
			kept = append(kept, seg)
		case seg.EndVia != nil && seg.EndVia.Name == boundaryVia:
			kept = append(kept, model.RouteSegment{
				Layer:  seg.Layer,
				Points: []model.Point{seg.EndVia.Point},
				EndVia: seg.EndVia,
			})
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	dsu := unionfind.New()
	segID := func(i int) string { return strconv.Itoa(i) }
	for i := range kept {
		dsu.Add(segID(i))
	}
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			if segmentsShareAPoint(kept[i], kept[j]) {
				dsu.Union(segID(i), segID(j))
			}
		}
	}

	groupSegs := make(map[string][]model.RouteSegment)
	var groupOrder []string
	for i, seg := range kept {
		root := dsu.Find(segID(i))
		if _, ok := groupSegs[root]; !ok {
			groupOrder = append(groupOrder, root)
		}
		groupSegs[root] = append(groupSegs[root], seg)
	}
	sort.Strings(groupOrder)

	fragments := make([]*model.Net, 0, len(groupOrder))
	for idx, root := range groupOrder {
		segs := groupSegs[root]
		if err := verifyGroupConnected(segs); err != nil {
			return nil, fmt.Errorf("net %s fragment %d: %w", net.Name, idx, err)
		}
		var pins []model.CellPinRef
		for _, ref := range net.CompPins {
			if refReachesSegments(layout, ref, segs, viaPitch) {
				pins = append(pins, ref)
			}
		}
		fragments = append(fragments, &model.Net{
			Name:     fmt.Sprintf("%s_%d", net.Name, idx),
			Segments: segs,
			CompPins: pins,
		})
	}
	return fragments, nil
}

// verifyGroupConnected re-derives the same merge union-find already
// computed, via an independent traversal: every point (and via endpoint)
// in segs becomes a graph vertex named by its coordinates, consecutive
// points within a segment become edges, and points shared across segments
// coincide on the same vertex ID. BFS from any one vertex must then reach
// every other vertex in the group. This never changes the fragmentation —
// union-find has already decided it — it only confirms the decision.
func verifyGroupConnected(segs []model.RouteSegment) error {
	if len(segs) == 0 {
		return nil
	}
	g := core.NewGraph(core.WithMultiEdges(), core.WithLoops())
	pointID := func(p model.Point) string { return fmt.Sprintf("%d_%d", p.X, p.Y) }

	var start string
	for _, seg := range segs {
		pts := append([]model.Point{}, seg.Points...)
		if seg.EndVia != nil {
			pts = append(pts, seg.EndVia.Point)
		}
		for _, p := range pts {
			id := pointID(p)
			if start == "" {
				start = id
			}
			if !g.HasVertex(id) {
				if err := g.AddVertex(id); err != nil {
					return fmt.Errorf("splitter: bfs cross-check: %w", err)
				}
			}
		}
		for i := 0; i+1 < len(pts); i++ {
			if _, err := g.AddEdge(pointID(pts[i]), pointID(pts[i+1]), 0); err != nil {
				return fmt.Errorf("splitter: bfs cross-check: %w", err)
			}
		}
	}

	result, err := bfs.BFS(g, start)
	if err != nil {
		return fmt.Errorf("splitter: bfs cross-check: %w", err)
	}
	if len(result.Order) != len(g.Vertices()) {
		return ErrGroupUnreachable
	}
	return nil
}

func segmentsShareAPoint(a, b model.RouteSegment) bool {
	for _, p := range a.Points {
		for _, q := range b.Points {
			if p == q {
				return true
			}
		}
	}
	return false
}

// refReachesSegments decides whether a comp/pin reference is still
// electrically part of the surviving route fragment segs: a primary pin
// counts if some point lies within one via-pitch hop (axis-aligned) of the
// pin's location; a cell pin counts if some point falls inside that cell
// instance's placed bounding box.
func refReachesSegments(layout *model.Layout, ref model.CellPinRef, segs []model.RouteSegment, viaPitch int64) bool {
	if ref.IsPrimary() {
		pin, ok := layout.PrimaryPin(ref.Pin)
		if !ok {
			return false
		}
		neighbors := []model.Point{
			{X: pin.Point.X - viaPitch, Y: pin.Point.Y},
			{X: pin.Point.X + viaPitch, Y: pin.Point.Y},
			{X: pin.Point.X, Y: pin.Point.Y - viaPitch},
			{X: pin.Point.X, Y: pin.Point.Y + viaPitch},
		}
		for _, seg := range segs {
			for _, p := range seg.Points {
				for _, n := range neighbors {
					if p == n {
						return true
					}
				}
			}
		}
		return false
	}

	comp, ok := layout.Component(ref.Instance)
	if !ok {
		return false
	}
	macro, ok := layout.MacroOf(ref.Instance)
	if !ok {
		return false
	}
	minX, minY := comp.Placement.X, comp.Placement.Y
	maxX, maxY := minX+macro.Width, minY+macro.Height
	for _, seg := range segs {
		for _, p := range seg.Points {
			if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
				return true
			}
		}
		if seg.EndVia != nil {
			p := seg.EndVia.Point
			if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
				return true
			}
		}
	}
	return false
}
