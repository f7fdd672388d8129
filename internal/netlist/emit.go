package netlist

import (
	"io"
	"strings"
)

// Emit writes the Verilog-style gate-level netlist of spec.md §6.
// Instances are emitted in the order Assemble recorded them (layout
// insertion order); each pin of a cell appears since every macro pin is
// either INPUT or OUTPUT.
func Emit(w io.Writer, n *Netlist) error {
	var b strings.Builder

	b.WriteString("module ")
	b.WriteString(n.Design)
	b.WriteString(" ( ")
	b.WriteString(strings.Join(n.PortOrder, ", "))
	b.WriteString(" );\n")

	if len(n.Inputs) > 0 {
		b.WriteString("  input  ")
		b.WriteString(strings.Join(n.Inputs, ", "))
		b.WriteString(" ;\n")
	}
	if len(n.Outputs) > 0 {
		b.WriteString("  output ")
		b.WriteString(strings.Join(n.Outputs, ", "))
		b.WriteString(" ;\n")
	}
	if len(n.Wires) > 0 {
		b.WriteString("  wire   ")
		b.WriteString(strings.Join(n.Wires, ", "))
		b.WriteString(" ;\n")
	}

	for _, inst := range n.Instances {
		b.WriteString("  ")
		b.WriteString(inst.MacroName)
		b.WriteString(" ")
		b.WriteString(inst.InstID)
		b.WriteString(" ( ")
		conns := make([]string, 0, len(inst.PinOrder))
		for _, pin := range inst.PinOrder {
			conns = append(conns, "."+pin+"("+inst.Connections[pin]+")")
		}
		b.WriteString(strings.Join(conns, ", "))
		b.WriteString(" );\n")
	}

	b.WriteString("endmodule\n")

	_, err := io.WriteString(w, b.String())
	return err
}
