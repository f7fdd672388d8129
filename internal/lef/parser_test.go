package lef_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/lef"
	"github.com/opensplit/feolattack/internal/model"
)

const sampleLib = `
MACRO INV_X1
SIZE 200 400
PIN A
DIRECTION INPUT
LAYER metal1
END
PIN Z
DIRECTION OUTPUT
LAYER metal1
END
END
MACRO NAND2_X1
SIZE 200 400
PIN A1
DIRECTION INPUT
END
PIN A2
DIRECTION INPUT
END
PIN ZN
DIRECTION OUTPUT
END
END
`

func TestParse_TwoMacrosWithPins(t *testing.T) {
	lib, err := lef.Parse(strings.NewReader(sampleLib))
	require.NoError(t, err)

	inv, ok := lib.Macro("INV_X1")
	require.True(t, ok)
	require.Equal(t, int64(200), inv.Width)
	require.Equal(t, int64(400), inv.Height)
	require.Equal(t, []string{"A", "Z"}, inv.PinOrder)
	require.Equal(t, model.Input, inv.Pins["A"].Direction)
	require.Equal(t, model.Output, inv.Pins["Z"].Direction)
	require.Equal(t, "metal1", inv.Pins["A"].Layer)

	nand, ok := lib.Macro("NAND2_X1")
	require.True(t, ok)
	require.Equal(t, []string{"A1", "A2", "ZN"}, nand.PinOrder)
}

func TestParse_UnknownKeywordErrors(t *testing.T) {
	_, err := lef.Parse(strings.NewReader("MACRO X\nBOGUS 1 2\nEND\n"))
	require.ErrorIs(t, err, lef.ErrUnexpectedKeyword)
}

func TestParse_UnclosedMacroErrors(t *testing.T) {
	_, err := lef.Parse(strings.NewReader("MACRO X\nSIZE 1 2\n"))
	require.ErrorIs(t, err, lef.ErrUnexpectedEOF)
}
