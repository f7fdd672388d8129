package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/classify"
	"github.com/opensplit/feolattack/internal/model"
)

func buildLayout(t *testing.T) *model.Layout {
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
	return layout
}

func TestClassify_SourcesAndSinks(t *testing.T) {
	layout := buildLayout(t)
	require.NoError(t, layout.AddNet(&model.Net{
		Name:     "A",
		CompPins: []model.CellPinRef{{Instance: model.PrimaryPinInstance, Pin: "A"}, {Instance: "u0", Pin: "A"}},
	}))

	res, err := classify.Classify(layout)
	require.NoError(t, err)

	require.Contains(t, res.Sources, model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "A"})
	require.Contains(t, res.Sinks, model.CellPinRef{Instance: "u0", Pin: "A"})
	// primary output Z was never routed, so Classify must synthesize its
	// singleton net and still classify it as a sink.
	require.Contains(t, res.Sinks, model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: "Z"})
	_, ok := layout.Net("Z")
	require.True(t, ok)
}
