package netlist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/flowadapter"
	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/netlist"
)

func TestAssembleAndEmit_SingleGate(t *testing.T) {
	lib := model.NewLibrary()
	require.NoError(t, lib.AddMacro(&model.Macro{
		Name:     "INV_X1",
		PinOrder: []string{"A", "Z"},
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input},
			"Z": {Direction: model.Output},
		},
	}))
	layout := model.NewLayout(lib, "top", model.DieArea{Max: model.Point{X: 1000, Y: 1000}}, model.DefaultLayerOrder(3))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u0", MacroName: "INV_X1"}))
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "A", Direction: model.Input}))
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "Z", Direction: model.Output}))

	assignments := []flowadapter.Assignment{
		{Source: model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "A"}, Sink: model.CellPinRef{Instance: "u0", Pin: "A"}},
		{Source: model.CellPinRef{Instance: "u0", Pin: "Z"}, Sink: model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "Z"}},
	}

	nl, err := netlist.Assemble(layout, assignments, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, nl.Inputs)
	require.Equal(t, []string{"Z"}, nl.Outputs)
	require.Empty(t, nl.Wires)

	var out strings.Builder
	require.NoError(t, netlist.Emit(&out, nl))
	text := out.String()
	require.Contains(t, text, "module top ( A, Z );")
	require.Contains(t, text, "input  A ;")
	require.Contains(t, text, "output Z ;")
	require.Contains(t, text, "INV_X1 u0 ( .A(A), .Z(Z) );")
	require.Contains(t, text, "endmodule")
}

func TestAssemble_UnresolvedSinkGetsMarkerNet(t *testing.T) {
	lib := model.NewLibrary()
	require.NoError(t, lib.AddMacro(&model.Macro{
		Name:     "INV_X1",
		PinOrder: []string{"A", "Z"},
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input},
			"Z": {Direction: model.Output},
		},
	}))
	layout := model.NewLayout(lib, "top", model.DieArea{Max: model.Point{X: 1000, Y: 1000}}, model.DefaultLayerOrder(3))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u0", MacroName: "INV_X1"}))

	unresolved := []model.CellPinRef{{Instance: "u0", Pin: "A"}}
	nl, err := netlist.Assemble(layout, nil, unresolved)
	require.NoError(t, err)
	require.Equal(t, netlist.UnresolvedNetName, nl.Instances[0].Connections["A"])
}
