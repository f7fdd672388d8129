package splitter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/model"
	"github.com/opensplit/feolattack/internal/splitter"
)

func TestLoadConfig_RoundTrips(t *testing.T) {
	cfg := splitter.Config{
		InputFile:  "in.def",
		OutputFile: "out.def",
		BackEnd:    true,
		FrontEnd:   false,
		SplitLayer: "metal3",
		ViaPitch:   70,
	}
	var buf strings.Builder
	require.NoError(t, splitter.SaveConfig(&buf, cfg))

	got, err := splitter.LoadConfig(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestProperLayers_BackEndOnlyKeepsAtOrAboveSplit(t *testing.T) {
	layers := model.DefaultLayerOrder(4)
	good, err := splitter.ProperLayers(layers, true, false, "metal2")
	require.NoError(t, err)
	require.True(t, good["metal2"])
	require.True(t, good["metal3"])
	require.False(t, good["metal1"])
	require.False(t, good["poly"])
}

func TestProperLayers_NeitherSideYieldsEmptySet(t *testing.T) {
	layers := model.DefaultLayerOrder(4)
	good, err := splitter.ProperLayers(layers, false, false, "metal2")
	require.NoError(t, err)
	require.Empty(t, good)
}

func oneGateLayout(t *testing.T) *model.Layout {
	t.Helper()
	lib := model.NewLibrary()
	require.NoError(t, lib.AddMacro(&model.Macro{
		Name:     "INV_X1",
		Width:    200,
		Height:   400,
		PinOrder: []string{"A", "Z"},
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input},
			"Z": {Direction: model.Output},
		},
	}))
	layout := model.NewLayout(lib, "top", model.DieArea{Max: model.Point{X: 2000, Y: 2000}}, model.DefaultLayerOrder(4))
	require.NoError(t, layout.AddComponent(&model.Component{InstID: "u0", MacroName: "INV_X1", Placement: model.Point{X: 0, Y: 0}}))
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "A", Direction: model.Input, Point: model.Point{X: 1000, Y: 0}}))
	require.NoError(t, layout.AddPrimaryPin(&model.Pin{Name: "Z", Direction: model.Output, Point: model.Point{X: 1930, Y: 0}}))
	return layout
}

func TestSplit_KeepsStubViaAtBoundary(t *testing.T) {
	layout := oneGateLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name: "n1",
		Segments: []model.RouteSegment{
			{Layer: "metal1", Points: []model.Point{{X: 100, Y: 0}, {X: 300, Y: 100}}},
			{Layer: "metal2", Points: []model.Point{{X: 300, Y: 100}, {X: 500, Y: 100}}, EndVia: &model.Via{Name: "via1", Point: model.Point{X: 300, Y: 100}}},
		},
		CompPins: []model.CellPinRef{{Instance: "u0", Pin: "A"}},
	}))

	// Keep only the front end (below the split layer): the metal2 segment
	// is filtered out, but its via1 end bridges to metal1 so it survives
	// as a stub and stays joined to the metal1 segment at that point.
	good, err := splitter.ProperLayers(layout.Layers, false, true, "metal2")
	require.NoError(t, err)

	out, err := splitter.Split(layout, good, "metal2")
	require.NoError(t, err)

	var names []string
	for _, n := range out.Nets() {
		names = append(names, n.Name)
	}
	require.Equal(t, []string{"n1_0"}, names)
	frag, _ := out.Net("n1_0")
	require.Len(t, frag.Segments, 2)
	require.Contains(t, []string{frag.Segments[0].Layer, frag.Segments[1].Layer}, "metal1")
	require.Equal(t, []model.CellPinRef{{Instance: "u0", Pin: "A"}}, frag.CompPins)
}

func TestSplit_NetFullyWithinGoodLayersPassesThrough(t *testing.T) {
	layout := oneGateLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name:     "n1",
		Segments: []model.RouteSegment{{Layer: "metal1", Points: []model.Point{{X: 100, Y: 0}}}},
		CompPins: []model.CellPinRef{{Instance: "u0", Pin: "A"}},
	}))

	good, err := splitter.ProperLayers(layout.Layers, false, true, "metal2")
	require.NoError(t, err)

	out, err := splitter.Split(layout, good, "metal2")
	require.NoError(t, err)
	_, ok := out.Net("n1")
	require.True(t, ok)
}
