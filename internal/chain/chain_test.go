package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/chain"
	"github.com/opensplit/feolattack/internal/model"
)

func twoInverterLayout(t *testing.T) *model.Layout {
	t.Helper()
	lib := model.NewLibrary()
	require.NoError(t, lib.AddMacro(&model.Macro{
		Name: "INV_X1",
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input},
			"Z": {Direction: model.Output},
		},
	}))
	layout := model.NewLayout(lib, "top", model.DieArea{Max: model.Point{X: 1000, Y: 1000}}, model.DefaultLayerOrder(3))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u0", MacroName: "INV_X1"}))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u1", MacroName: "INV_X1"}))
	return layout
}

func TestBuild_EdgeFromOutputToInput(t *testing.T) {
	layout := twoInverterLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name: "n1",
		CompPins: []model.CellPinRef{
			{Instance: "u0", Pin: "Z"},
			{Instance: "u1", Pin: "A"},
		},
	}))

	g, err := chain.Build(layout)
	require.NoError(t, err)
	require.True(t, g.HasEdge("u0", "u1"))

	desc, err := chain.Descendants(g, "u0")
	require.NoError(t, err)
	require.True(t, desc["u1"])
	require.False(t, desc["u0"])
}

func TestDetectLoops_FindsCycle(t *testing.T) {
	layout := twoInverterLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name: "n1",
		CompPins: []model.CellPinRef{{Instance: "u0", Pin: "Z"}, {Instance: "u1", Pin: "A"}},
	}))
	require.NoError(t, layout.AddNet(&model.Net{
		Name: "n2",
		CompPins: []model.CellPinRef{{Instance: "u1", Pin: "Z"}, {Instance: "u0", Pin: "A"}},
	}))

	g, err := chain.Build(layout)
	require.NoError(t, err)

	found, cycles, err := chain.DetectLoops(g)
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, cycles)
}
