package distmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/chain"
	"github.com/opensplit/feolattack/internal/classify"
	"github.com/opensplit/feolattack/internal/distmatrix"
	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/netgeom"
)

func oneGateLayout(t *testing.T) *model.Layout {
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
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "A", Direction: model.Input, Point: model.Point{X: 0, Y: 0}}))
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "Z", Direction: model.Output, Point: model.Point{X: 900, Y: 900}}))
	require.NoError(t, layout.AddNet(&model.Net{
		Name:     "A",
		Segments: []model.RouteSegment{{Layer: "poly", Points: []model.Point{{X: 0, Y: 0}}}},
		CompPins: []model.CellPinRef{{Instance: model.PrimaryPinInstance, Pin: "A"}, {Instance: "u0", Pin: "A"}},
	}))
	return layout
}

func buildAll(t *testing.T, layout *model.Layout) (*classify.Result, *distmatrix.Matrix) {
	t.Helper()
	res, err := classify.Classify(layout)
	require.NoError(t, err)

	geo, err := netgeom.Analyze(layout)
	require.NoError(t, err)

	g, err := chain.Build(layout)
	require.NoError(t, err)

	m, err := distmatrix.Build(layout, res.Sources, res.Sinks, geo, g, distmatrix.WithParallelism(1))
	require.NoError(t, err)
	return res, m
}

func TestBuild_AlreadyWiredCaseOne(t *testing.T) {
	layout := oneGateLayout(t)
	res, m := buildAll(t, layout)

	// u0.A is already wired (net "A" contains the primary input source and
	// the sink): distance must be exactly 0, not the Manhattan fallback.
	si := indexOf(t, res.Sources, model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "A"})
	ki := indexOf(t, res.Sinks, model.CellPinRef{Instance: "u0", Pin: "A"})
	require.Equal(t, int64(0), m.At(si, ki))
}

func TestBuild_PrimaryToPrimaryInfeasible(t *testing.T) {
	layout := oneGateLayout(t)
	res, m := buildAll(t, layout)

	si := indexOf(t, res.Sources, model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "A"})
	ki := indexOf(t, res.Sinks, model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "Z"})
	require.Equal(t, distmatrix.Infeasible, m.At(si, ki))
}

func indexOf(t *testing.T, refs []model.CellPinRef, target model.CellPinRef) int {
	t.Helper()
	for i, r := range refs {
		if r == target {
			return i
		}
	}
	t.Fatalf("ref %+v not found in %+v", target, refs)
	return -1
}
