package mincostflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/mincostflow"
)

func TestSolve_SingleFeasiblePair(t *testing.T) {
	n := mincostflow.Build([]string{"u1:A"}, []string{"u2:B"}, []mincostflow.Edge{
		{Source: "u1:A", Sink: "u2:B", Cost: 42},
	}, 0)

	res, err := mincostflow.Solve(n)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.MaxFlow)
	require.Equal(t, int64(42), res.MinCost)
}

func TestSolve_PicksCheaperOfTwoCandidates(t *testing.T) {
	// Two candidate source pins compete for the single sink pin; only one
	// unit of flow can reach it, so the solver must route through the
	// cheaper of the two.
	n := mincostflow.Build(
		[]string{"u1:A", "u2:A"},
		[]string{"u3:B"},
		[]mincostflow.Edge{
			{Source: "u1:A", Sink: "u3:B", Cost: 100},
			{Source: "u2:A", Sink: "u3:B", Cost: 10},
		},
		0,
	)

	res, err := mincostflow.Solve(n)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.MaxFlow)
	require.Equal(t, int64(10), res.MinCost)
}

func TestSolve_InfeasibleEdgesAreOmitted(t *testing.T) {
	n := mincostflow.Build([]string{"u1:A"}, []string{"u2:B"}, []mincostflow.Edge{
		{Source: "u1:A", Sink: "u2:B", Cost: mincostflow.Infeasible},
	}, 0)

	res, err := mincostflow.Solve(n)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.MaxFlow)
}

func TestSolve_DeterministicAcrossReruns(t *testing.T) {
	sources := []string{"u1:A", "u2:A"}
	sinks := []string{"u3:B", "u4:B"}
	edges := []mincostflow.Edge{
		{Source: "u1:A", Sink: "u3:B", Cost: 5},
		{Source: "u1:A", Sink: "u4:B", Cost: 5},
		{Source: "u2:A", Sink: "u3:B", Cost: 5},
		{Source: "u2:A", Sink: "u4:B", Cost: 5},
	}

	first := mincostflow.Build(sources, sinks, edges, 0)
	second := mincostflow.Build(sources, sinks, edges, 0)

	r1, err := mincostflow.Solve(first)
	require.NoError(t, err)
	r2, err := mincostflow.Solve(second)
	require.NoError(t, err)

	require.Equal(t, r1.MaxFlow, r2.MaxFlow)
	require.Equal(t, r1.MinCost, r2.MinCost)
	require.Equal(t, r1.ArcFlow, r2.ArcFlow)
}

func TestSolve_ErrorsWithoutSourceOrSink(t *testing.T) {
	n := mincostflow.NewNetwork()
	n.AddNode("a")
	_, err := mincostflow.Solve(n)
	require.ErrorIs(t, err, mincostflow.ErrNoSuperSource)
}
