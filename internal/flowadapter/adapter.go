// Package flowadapter is C6, the Flow Solver Adapter: it turns a
// internal/distmatrix.Matrix into a internal/mincostflow network, solves
// it, and reads back the chosen source→sink assignment.
package flowadapter

import (
	"fmt"

	"github.com/opensplit/feolattack/internal/distmatrix"
	"github.com/opensplit/feolattack/internal/mincostflow"
	"github.com/opensplit/feolattack/internal/model"
)

// Assignment is one chosen source→sink reconnection and its cost.
type Assignment struct {
	Source model.CellPinRef
	Sink   model.CellPinRef
	Cost   int64
}

// Result is the outcome of Solve.
type Result struct {
	Assignments []Assignment
	MinCost     int64
	// Unresolved lists sink pins that received no assignment — max-flow
	// did not saturate them — per spec.md §7's "infeasible reconstruction".
	Unresolved []model.CellPinRef
}

// Solve builds the bipartite super-source/super-sink network from m
// (§4.6), runs min-cost max-flow, and extracts the chosen assignment.
// sourceCap, if 0, resolves to the spec default max(len(sinks), 1).
func Solve(m *distmatrix.Matrix, sourceCap int64) (*Result, error) {
	sourceIDs := make([]string, m.Rows())
	sourceIndex := make(map[string]int, m.Rows())
	for i, s := range m.Sources {
		sourceIDs[i] = s.ID()
		sourceIndex[sourceIDs[i]] = i
	}
	sinkIDs := make([]string, m.Cols())
	sinkIndex := make(map[string]int, m.Cols())
	for j, k := range m.Sinks {
		sinkIDs[j] = k.ID()
		sinkIndex[sinkIDs[j]] = j
	}

	var edges []mincostflow.Edge
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			d := m.At(i, j)
			if d == distmatrix.Infeasible {
				continue
			}
			edges = append(edges, mincostflow.Edge{Source: sourceIDs[i], Sink: sinkIDs[j], Cost: d})
		}
	}

	net := mincostflow.Build(sourceIDs, sinkIDs, edges, sourceCap)
	solved, err := mincostflow.Solve(net)
	if err != nil {
		return nil, fmt.Errorf("flowadapter: %w", err)
	}

	// Edge arcs were appended, in order, after the |sources| super-source
	// arcs and |sinks| sink-to-super-sink arcs (see mincostflow.Build), so
	// the i-th entry of `edges` is arc index len(sourceIDs)+len(sinkIDs)+i.
	base := len(sourceIDs) + len(sinkIDs)

	res := &Result{}
	satisfied := make(map[string]bool, len(sinkIDs))
	for i, e := range edges {
		flow := solved.ArcFlow[base+i]
		if flow <= 0 {
			continue
		}
		srcRef, sinkRef := m.Sources[sourceIndex[e.Source]], m.Sinks[sinkIndex[e.Sink]]
		res.Assignments = append(res.Assignments, Assignment{Source: srcRef, Sink: sinkRef, Cost: e.Cost})
		satisfied[e.Sink] = true
	}
	res.MinCost = solved.MinCost

	for j, id := range sinkIDs {
		if !satisfied[id] {
			res.Unresolved = append(res.Unresolved, m.Sinks[j])
		}
	}

	return res, nil
}

