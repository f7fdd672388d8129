package netgeom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/netgeom"
)

func smallLayout(t *testing.T) *model.Layout {
	t.Helper()
	lib := model.NewLibrary()
	require.NoError(t, lib.AddMacro(&model.Macro{
		Name: "INV_X1", Width: 800, Height: 1200,
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input, Layer: "metal1"},
			"Z": {Direction: model.Output, Layer: "metal1"},
		},
	}))
	layout := model.NewLayout(lib, "top", model.DieArea{Max: model.Point{X: 10000, Y: 10000}}, model.DefaultLayerOrder(3))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u0", MacroName: "INV_X1"}))
	return layout
}

func TestAnalyze_EndPointAtClimbingVia(t *testing.T) {
	layout := smallLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name: "n1",
		Segments: []model.RouteSegment{
			{
				Layer:  "metal2",
				Points: []model.Point{{X: 100, Y: 100}, {X: 500, Y: 100}},
				EndVia: &model.Via{Name: "via2", Point: model.Point{X: 500, Y: 100}},
			},
		},
		CompPins: []model.CellPinRef{{Instance: "u0", Pin: "Z"}},
	}))

	geo, err := netgeom.Analyze(layout)
	require.NoError(t, err)
	g := geo["n1"]
	require.Len(t, g.EndPoints, 1)
	require.Equal(t, model.Point{X: 500, Y: 100}, g.EndPoints[0])
	// wire approached from the left (neighbor at x=100 < 500), so the
	// reachable rectangle must only extend rightward: x >= 500.
	require.Equal(t, int64(500), g.Rectangles[0].Min.X)
}

func TestAnalyze_PrimaryPinIsEndPoint(t *testing.T) {
	layout := smallLayout(t)
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "A", Direction: model.Input, Point: model.Point{X: 0, Y: 0}}))
	require.NoError(t, layout.AddNet(&model.Net{
		Name:     "A",
		CompPins: []model.CellPinRef{{Instance: model.PrimaryPinInstance, Pin: "A"}},
	}))

	geo, err := netgeom.Analyze(layout)
	require.NoError(t, err)
	require.Equal(t, []model.Point{{X: 0, Y: 0}}, geo["A"].EndPoints)
}

func TestAnalyze_EmptyNetDefaultsToDieArea(t *testing.T) {
	layout := smallLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{Name: "internal1"}))

	geo, err := netgeom.Analyze(layout)
	require.NoError(t, err)
	g := geo["internal1"]
	require.Empty(t, g.EndPoints)
	require.Equal(t, []model.DieArea{layout.DieArea}, g.Rectangles)
}

func TestAnalyze_EmptyNetOptedOut(t *testing.T) {
	layout := smallLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{Name: "internal1"}))

	geo, err := netgeom.Analyze(layout, netgeom.WithEmptyNetDirection(netgeom.Empty))
	require.NoError(t, err)
	require.Empty(t, geo["internal1"].Rectangles)
}
