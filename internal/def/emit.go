package def

import (
	"bufio"
	"fmt"
	"io"

	"github.com/opensplit/feolattack/internal/model"
)

// Write renders layout back into the same line-oriented grammar Parse
// reads, so internal/splitter's output can be fed straight back into
// another Parse (including, for testing, the attack pipeline itself).
func Write(w io.Writer, layout *model.Layout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "DESIGN %s\n", layout.Design)
	fmt.Fprintf(bw, "DIEAREA %d %d %d %d\n", layout.DieArea.Min.X, layout.DieArea.Min.Y, layout.DieArea.Max.X, layout.DieArea.Max.Y)

	comps := layout.Components()
	fmt.Fprintf(bw, "COMPONENTS %d\n", len(comps))
	for _, c := range comps {
		orient := c.Orientation
		if orient == "" {
			orient = "N"
		}
		fmt.Fprintf(bw, "COMPONENT %s %s %d %d %s\n", c.InstID, c.MacroName, c.Placement.X, c.Placement.Y, orient)
	}
	fmt.Fprintln(bw, "END")

	pins := layout.PrimaryPins()
	fmt.Fprintf(bw, "PINS %d\n", len(pins))
	for _, p := range pins {
		fmt.Fprintf(bw, "PIN %s %s %s %d %d\n", p.Name, p.Direction, p.Layer, p.Point.X, p.Point.Y)
	}
	fmt.Fprintln(bw, "END")

	nets := layout.Nets()
	fmt.Fprintf(bw, "NETS %d\n", len(nets))
	for _, n := range nets {
		fmt.Fprintf(bw, "NET %s\n", n.Name)
		for _, ref := range n.CompPins {
			fmt.Fprintf(bw, "COMPPIN %s %s\n", ref.Instance, ref.Pin)
		}
		for _, seg := range n.Segments {
			fmt.Fprintf(bw, "ROUTE %s", seg.Layer)
			for _, p := range seg.Points {
				fmt.Fprintf(bw, " %d %d", p.X, p.Y)
			}
			fmt.Fprintln(bw)
			if seg.EndVia != nil {
				fmt.Fprintf(bw, "VIA %s %d %d\n", seg.EndVia.Name, seg.EndVia.Point.X, seg.EndVia.Point.Y)
			}
		}
		fmt.Fprintln(bw, "END")
	}
	fmt.Fprintln(bw, "END")

	return bw.Flush()
}
