package distmatrix

import (
	"fmt"
	"runtime"
	"sync"

	core "github.com/katalvlaran/lvlath/core"
	"github.com/opensplit/feolattack/internal/chain"
	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/netgeom"
)

// Options configures Build.
type Options struct {
	// Parallelism bounds the worker pool used to fill independent
	// (source, sink) cells concurrently (§5: "may parallelize the
	// O(|S|·|K|) distance-matrix construction"). 0 selects runtime.NumCPU().
	Parallelism int
}

// Option mutates Options.
type Option func(*Options)

// WithParallelism overrides the worker-pool width.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

func defaultOptions() Options { return Options{} }

// Build computes the full compatibility/distance matrix for sources×sinks.
// geometry is the per-net output of internal/netgeom.Analyze; chainGraph is
// internal/chain.Build's already-connected cell graph, used for case 3's
// loop-avoidance forbidden set.
func Build(layout *model.Layout, sources, sinks []model.CellPinRef, geometry map[string]*netgeom.Geometry, chainGraph *core.Graph, opts ...Option) (*Matrix, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	netOf, err := buildNetIndex(layout)
	if err != nil {
		return nil, err
	}
	isSource := make(map[model.CellPinRef]bool, len(sources))
	for _, s := range sources {
		isSource[s] = true
	}
	doneSinks, err := computeDoneSinks(sinks, netOf, isSource)
	if err != nil {
		return nil, err
	}

	m := newMatrix(sources, sinks)

	type cell struct{ i, j int }
	jobs := make(chan cell, len(sources)*len(sinks))
	for i := range sources {
		for j := range sinks {
			jobs <- cell{i, j}
		}
	}
	close(jobs)

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				s, k := sources[c.i], sinks[c.j]
				d, err := evaluate(layout, s, k, netOf, doneSinks, geometry, chainGraph)
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					return
				}
				m.Set(c.i, c.j, d)
			}
		}()
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	return m, nil
}

func buildNetIndex(layout *model.Layout) (map[model.CellPinRef]string, error) {
	idx := make(map[model.CellPinRef]string)
	for _, net := range layout.Nets() {
		for _, ref := range net.CompPins {
			idx[ref] = net.Name
		}
	}
	return idx, nil
}

func computeDoneSinks(sinks []model.CellPinRef, netOf map[model.CellPinRef]string, isSource map[model.CellPinRef]bool) (map[model.CellPinRef]bool, error) {
	done := make(map[model.CellPinRef]bool, len(sinks))
	netHasSource := make(map[string]bool)
	for ref, netName := range netOf {
		if isSource[ref] {
			netHasSource[netName] = true
		}
	}
	for _, k := range sinks {
		netName, ok := netOf[k]
		if !ok {
			return nil, fmt.Errorf("distmatrix: sink %+v has no net", k)
		}
		if netHasSource[netName] {
			done[k] = true
		}
	}
	return done, nil
}

// evaluate runs the five-case cascade of §4.5 for one (s, k) pair.
func evaluate(
	layout *model.Layout,
	s, k model.CellPinRef,
	netOf map[model.CellPinRef]string,
	doneSinks map[model.CellPinRef]bool,
	geometry map[string]*netgeom.Geometry,
	chainGraph *core.Graph,
) (int64, error) {
	sNet, ok := netOf[s]
	if !ok {
		return 0, fmt.Errorf("distmatrix: source %+v has no net", s)
	}
	kNet, ok := netOf[k]
	if !ok {
		return 0, fmt.Errorf("distmatrix: sink %+v has no net", k)
	}

	// Case 1: already-wired.
	if doneSinks[k] {
		if sNet == kNet {
			return 0, nil
		}
		return Infeasible, nil
	}

	// Case 2: primary-to-primary.
	if s.IsPrimary() && k.IsPrimary() {
		return Infeasible, nil
	}

	// Case 3: loop avoidance.
	sourceCell := s.Instance
	forbidden, err := chain.Descendants(chainGraph, sourceCell)
	if err != nil {
		return 0, err
	}
	if net, ok := layout.Net(sNet); ok {
		for _, ref := range net.CompPins {
			if ref.Instance != sourceCell {
				forbidden[ref.Instance] = true
			}
		}
	}
	if k.Instance != model.PrimaryPinInstance && forbidden[k.Instance] {
		return Infeasible, nil
	}

	// Case 4: direction incompatibility.
	sGeo, kGeo := geometry[sNet], geometry[kNet]
	if sGeo == nil || kGeo == nil || !dangling(sGeo, kGeo) {
		return Infeasible, nil
	}

	// Case 5: Manhattan distance between closest end-points.
	best := int64(-1)
	for _, p := range sGeo.EndPoints {
		for _, q := range kGeo.EndPoints {
			d := p.ManhattanDistance(q)
			if best == -1 || d < best {
				best = d
			}
		}
	}
	if best == -1 {
		return Infeasible, nil
	}
	return best, nil
}

// dangling reports whether some end-point of a lies inside some direction
// rectangle of b, and symmetrically some end-point of b lies inside some
// rectangle of a.
func dangling(a, b *netgeom.Geometry) bool {
	return anyPointInAnyRect(a.EndPoints, b.Rectangles) && anyPointInAnyRect(b.EndPoints, a.Rectangles)
}

func anyPointInAnyRect(points []model.Point, rects []model.DieArea) bool {
	for _, p := range points {
		for _, r := range rects {
			if r.Contains(p) {
				return true
			}
		}
	}
	return false
}
