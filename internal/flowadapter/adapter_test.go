package flowadapter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/distmatrix"
	"github.com/opensplit/feolattack/internal/flowadapter"
	"github.com/opensplit/feolattack/internal/model"
)

func buildMatrix(sources, sinks []model.CellPinRef, rows [][]int64) *distmatrix.Matrix {
	m := distmatrix.New(sources, sinks)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

func TestSolve_PicksCheaperAssignmentAndResolvesAllSinks(t *testing.T) {
	sources := []model.CellPinRef{{Instance: "u0", Pin: "Z"}, {Instance: "u1", Pin: "Z"}}
	sinks := []model.CellPinRef{{Instance: "u2", Pin: "A"}, {Instance: "u3", Pin: "A"}}

	// u0 can only reach u2 (cost 5); u1 can reach both u2 (cost 1) and u3
	// (cost 1). u2 has capacity 1, so u1 must win it over u0; u1 also
	// fans out to u3, leaving nothing unresolved.
	matrix := buildMatrix(sources, sinks, [][]int64{
		{5, distmatrix.Infeasible},
		{1, 1},
	})

	res, err := flowadapter.Solve(matrix, 0)
	require.NoError(t, err)
	require.Empty(t, res.Unresolved)
	require.Len(t, res.Assignments, 2)
	for _, a := range res.Assignments {
		require.Equal(t, model.CellPinRef{Instance: "u1", Pin: "Z"}, a.Source)
	}
}

func TestSolve_ReportsUnresolvedSink(t *testing.T) {
	sources := []model.CellPinRef{{Instance: "u0", Pin: "Z"}}
	sinks := []model.CellPinRef{{Instance: "u1", Pin: "A"}, {Instance: "u2", Pin: "A"}}

	matrix := buildMatrix(sources, sinks, [][]int64{
		{3, distmatrix.Infeasible},
	})

	res, err := flowadapter.Solve(matrix, 0)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.Equal(t, []model.CellPinRef{{Instance: "u2", Pin: "A"}}, res.Unresolved)
}
