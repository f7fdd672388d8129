// Package netlist is C7, the Netlist Assembler: it groups the flow
// solver's chosen source→sink edges into electrical-net equivalence
// classes, names each class per spec.md §4.7, and builds the in-memory
// netlist model that internal/netlist's Emit function renders as text.
package netlist

import (
	"fmt"

	"github.com/opensplit/feolattack/internal/flowadapter"
	"github.com/opensplit/feolattack/internal/model"
)

// UnresolvedNetName is the literal net name marking a sink the flow solver
// could not saturate (§7 "infeasible reconstruction").
const UnresolvedNetName = "UNRESOLVED"

// Instance is one placed component in the output netlist, with each of its
// pins already resolved to a net name.
type Instance struct {
	InstID      string
	MacroName   string
	PinOrder    []string
	Connections map[string]string // pin name -> net name
}

// Netlist is the assembled gate-level design ready for text emission.
type Netlist struct {
	Design    string
	Inputs    []string // primary input pin names, port-declaration order
	Outputs   []string // primary output pin names, port-declaration order
	PortOrder []string // every primary pin name, in module-header order
	Wires     []string // internal net names, first-seen order
	Instances []Instance
}

// Assemble builds a Netlist from the flow solver's chosen assignments and
// its list of unresolved sinks.
func Assemble(layout *model.Layout, assignments []flowadapter.Assignment, unresolved []model.CellPinRef) (*Netlist, error) {
	netNameOf := make(map[model.CellPinRef]string)

	for _, k := range unresolved {
		netNameOf[k] = UnresolvedNetName
	}

	var sourceOrder []model.CellPinRef
	groups := make(map[model.CellPinRef][]model.CellPinRef)
	for _, a := range assignments {
		if _, seen := groups[a.Source]; !seen {
			sourceOrder = append(sourceOrder, a.Source)
		}
		groups[a.Source] = append(groups[a.Source], a.Sink)
	}

	var wires []string
	wireCounter := 0
	for _, s := range sourceOrder {
		sinks := groups[s]
		name := ""
		switch {
		case s.IsPrimary():
			name = s.Pin
		default:
			if primaryOut, ok := firstPrimarySink(sinks); ok {
				name = primaryOut.Pin
			} else {
				wireCounter++
				name = fmt.Sprintf("n%d", wireCounter)
				wires = append(wires, name)
			}
		}
		netNameOf[s] = name
		for _, k := range sinks {
			netNameOf[k] = name
		}
	}

	var inputs, outputs, portOrder []string
	for _, pin := range layout.PrimaryPins() {
		ref := model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: pin.Name}
		if _, ok := netNameOf[ref]; !ok {
			netNameOf[ref] = pin.Name // a primary pin the solver never touched still names its own net
		}
		portOrder = append(portOrder, pin.Name)
		if pin.Direction == model.Input {
			inputs = append(inputs, pin.Name)
		} else {
			outputs = append(outputs, pin.Name)
		}
	}

	var instances []Instance
	for _, c := range layout.Components() {
		macro, ok := layout.MacroOf(c.InstID)
		if !ok {
			return nil, fmt.Errorf("netlist: %w: %s", model.ErrUnknownMacro, c.InstID)
		}
		pinOrder := macro.OrderedPinNames()
		conns := make(map[string]string, len(pinOrder))
		for _, pinName := range pinOrder {
			ref := model.CellPinRef{Instance: c.InstID, Pin: pinName}
			name, ok := netNameOf[ref]
			if !ok {
				name = UnresolvedNetName
			}
			conns[pinName] = name
		}
		instances = append(instances, Instance{
			InstID:      c.InstID,
			MacroName:   c.MacroName,
			PinOrder:    pinOrder,
			Connections: conns,
		})
	}

	return &Netlist{
		Design:    layout.Design,
		Inputs:    inputs,
		Outputs:   outputs,
		PortOrder: portOrder,
		Wires:     wires,
		Instances: instances,
	}, nil
}

func firstPrimarySink(sinks []model.CellPinRef) (model.CellPinRef, bool) {
	for _, k := range sinks {
		if k.IsPrimary() {
			return k, true
		}
	}
	return model.CellPinRef{}, false
}
