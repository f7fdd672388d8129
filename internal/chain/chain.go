// Package chain builds the "already-chained" cell graph: what the attacker
// can already read off the FEOL nets about cell-to-cell signal flow,
// independent of any inference. internal/distmatrix uses it to forbid
// source→sink assignments that would create a combinational loop; after
// netlist assembly the same graph, widened with the inferred connections,
// is re-used as a diagnostic for the "inferred loop" error kind.
package chain

import (
	"fmt"

	core "github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/opensplit/feolattack/internal/model"
)

// Build constructs the directed cell graph: u → v iff some surviving net
// carries an OUTPUT pin of cell instance u and an INPUT pin of cell
// instance v. Primary pins are not nodes — they can originate or absorb a
// signal but, having no fan-in of their own, can never participate in a
// combinational loop.
func Build(layout *model.Layout) (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())

	for _, c := range layout.Components() {
		if err := g.AddVertex(c.InstID); err != nil {
			return nil, fmt.Errorf("chain: %w", err)
		}
	}

	for _, net := range layout.Nets() {
		var outputs, inputs []string
		for _, ref := range net.CompPins {
			if ref.IsPrimary() {
				continue
			}
			macro, ok := layout.MacroOf(ref.Instance)
			if !ok {
				return nil, fmt.Errorf("chain: net %s: %w: %s", net.Name, model.ErrUnknownComponent, ref.Instance)
			}
			pin, ok := macro.Pins[ref.Pin]
			if !ok {
				return nil, fmt.Errorf("chain: net %s: %w: %s.%s", net.Name, model.ErrUnknownMacroPin, ref.Instance, ref.Pin)
			}
			if pin.Direction == model.Output {
				outputs = append(outputs, ref.Instance)
			} else {
				inputs = append(inputs, ref.Instance)
			}
		}

		for _, u := range outputs {
			for _, v := range inputs {
				if _, err := g.AddEdge(u, v, 0); err != nil {
					return nil, fmt.Errorf("chain: net %s: %w", net.Name, err)
				}
			}
		}
	}

	return g, nil
}

// Descendants returns the set of cell instances transitively reachable
// from u by following chain edges, excluding u itself. Computed on demand
// via DFS per spec.md §4.4; if u sits on a cycle this set will (correctly)
// include u's own predecessors, which is itself the loop diagnostic C5
// relies on to widen its forbidden set.
func Descendants(g *core.Graph, u string) (map[string]bool, error) {
	if !g.HasVertex(u) {
		return map[string]bool{}, nil
	}
	res, err := dfs.DFS(g, u)
	if err != nil {
		return nil, fmt.Errorf("chain: descendants(%s): %w", u, err)
	}
	delete(res.Visited, u)
	return res.Visited, nil
}

// DetectLoops reports whether the chain graph contains any directed cycle,
// and the cycles found, for the §7 "inferred loop" diagnostic (re-run on
// the post-assembly graph by the caller).
func DetectLoops(g *core.Graph) (bool, [][]string, error) {
	found, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		return false, nil, fmt.Errorf("chain: %w", err)
	}
	return found, cycles, nil
}
