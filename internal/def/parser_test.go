package def_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/def"
	"github.com/opensplit/feolattack/internal/model"
)

const sampleLayout = `
DESIGN top
DIEAREA 0 0 2000 2000
LAYERS 4
COMPONENTS 1
COMPONENT u0 INV_X1 0 0 N
END
PINS 2
PIN A INPUT metal1 1000 0
PIN Z OUTPUT metal1 1930 0
END
NETS 1
NET n1
COMPPIN PIN A
COMPPIN u0 A
ROUTE metal1 1000 0 100 0
END
END
`

func sampleLib(t *testing.T) *model.Library {
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
	return lib
}

func TestParse_BuildsLayout(t *testing.T) {
	layout, err := def.Parse(strings.NewReader(sampleLayout), sampleLib(t))
	require.NoError(t, err)
	require.Equal(t, "top", layout.Design)
	require.Len(t, layout.Components(), 1)
	require.Len(t, layout.PrimaryPins(), 2)

	net, ok := layout.Net("n1")
	require.True(t, ok)
	require.Len(t, net.CompPins, 2)
	require.Len(t, net.Segments, 1)
	require.Equal(t, "metal1", net.Segments[0].Layer)
}

func TestParse_UnknownMacroIsSchemaViolation(t *testing.T) {
	bad := strings.Replace(sampleLayout, "INV_X1", "BOGUS", 1)
	_, err := def.Parse(strings.NewReader(bad), sampleLib(t))
	require.ErrorIs(t, err, model.ErrUnknownMacro)
}

func TestParse_MissingDesignErrors(t *testing.T) {
	_, err := def.Parse(strings.NewReader("DIEAREA 0 0 1 1\n"), sampleLib(t))
	require.ErrorIs(t, err, def.ErrNoDesign)
}
