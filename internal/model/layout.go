package model

import "fmt"

// Layout is the in-memory partial (FEOL) layout: its die area, placed
// components, primary pins, and surviving nets, plus the library that
// describes every component's macro. Entities are not modified once
// added; nets can still be added afterwards (internal/classify adds
// singleton nets for unrouted primary pins) or replaced via ReplaceNets.
// internal/splitter leaves its input untouched and returns a new Layout.
type Layout struct {
	Design  string
	DieArea DieArea
	Layers  LayerOrder
	lib     *Library

	components map[string]*Component
	compOrder  []string

	pins     map[string]*Pin
	pinOrder []string

	nets     map[string]*Net
	netOrder []string
}

// NewLayout returns an empty Layout backed by lib.
func NewLayout(lib *Library, design string, dieArea DieArea, layers LayerOrder) *Layout {
	return &Layout{
		Design:     design,
		DieArea:    dieArea,
		Layers:     layers,
		lib:        lib,
		components: make(map[string]*Component),
		pins:       make(map[string]*Pin),
		nets:       make(map[string]*Net),
	}
}

// Library returns the cell library backing this layout.
func (l *Layout) Library() *Library { return l.lib }

// AddComponent registers a placed instance. Returns ErrUnknownMacro if its
// macro is not in the library, or ErrDuplicateComponent if the instance ID
// is already used.
func (l *Layout) AddComponent(c *Component) error {
	if _, ok := l.lib.Macro(c.MacroName); !ok {
		return fmt.Errorf("%w: instance %s -> macro %s", ErrUnknownMacro, c.InstID, c.MacroName)
	}
	if _, exists := l.components[c.InstID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, c.InstID)
	}
	l.components[c.InstID] = c
	l.compOrder = append(l.compOrder, c.InstID)
	return nil
}

// AddPrimaryPin registers a design-level I/O pin.
func (l *Layout) AddPrimaryPin(p *Pin) error {
	if _, exists := l.pins[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePin, p.Name)
	}
	l.pins[p.Name] = p
	l.pinOrder = append(l.pinOrder, p.Name)
	return nil
}

// AddNet registers net, validating every comp_pin reference against the
// components/pins/macros already added, per §3's invariants.
func (l *Layout) AddNet(net *Net) error {
	if _, exists := l.nets[net.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNet, net.Name)
	}
	for _, ref := range net.CompPins {
		if ref.IsPrimary() {
			if _, ok := l.pins[ref.Pin]; !ok {
				return fmt.Errorf("%w: net %s -> pin %s", ErrUnknownPrimaryPin, net.Name, ref.Pin)
			}
			continue
		}
		comp, ok := l.components[ref.Instance]
		if !ok {
			return fmt.Errorf("%w: net %s -> instance %s", ErrUnknownComponent, net.Name, ref.Instance)
		}
		macro, _ := l.lib.Macro(comp.MacroName) // AddComponent already verified this exists
		if _, ok := macro.Pins[ref.Pin]; !ok {
			return fmt.Errorf("%w: net %s -> %s.%s on macro %s", ErrUnknownMacroPin, net.Name, ref.Instance, ref.Pin, comp.MacroName)
		}
	}
	l.nets[net.Name] = net
	l.netOrder = append(l.netOrder, net.Name)
	return nil
}

// Component looks up a placed instance by ID.
func (l *Layout) Component(instID string) (*Component, bool) {
	c, ok := l.components[instID]
	return c, ok
}

// Components returns every component in insertion order.
func (l *Layout) Components() []*Component {
	out := make([]*Component, 0, len(l.compOrder))
	for _, id := range l.compOrder {
		out = append(out, l.components[id])
	}
	return out
}

// PrimaryPin looks up a design-level pin by name.
func (l *Layout) PrimaryPin(name string) (*Pin, bool) {
	p, ok := l.pins[name]
	return p, ok
}

// PrimaryPins returns every primary pin in insertion order.
func (l *Layout) PrimaryPins() []*Pin {
	out := make([]*Pin, 0, len(l.pinOrder))
	for _, name := range l.pinOrder {
		out = append(out, l.pins[name])
	}
	return out
}

// Net looks up a net by name.
func (l *Layout) Net(name string) (*Net, bool) {
	n, ok := l.nets[name]
	return n, ok
}

// Nets returns every net in insertion order.
func (l *Layout) Nets() []*Net {
	out := make([]*Net, 0, len(l.netOrder))
	for _, name := range l.netOrder {
		out = append(out, l.nets[name])
	}
	return out
}

// ReplaceNets discards the current net set and installs a new one,
// preserving insertion order as given. No package in this module calls
// it; internal/splitter builds a new Layout instead.
func (l *Layout) ReplaceNets(nets []*Net) {
	l.nets = make(map[string]*Net, len(nets))
	l.netOrder = l.netOrder[:0]
	for _, n := range nets {
		l.nets[n.Name] = n
		l.netOrder = append(l.netOrder, n.Name)
	}
}

// MacroOf returns the macro backing a component instance.
func (l *Layout) MacroOf(instID string) (*Macro, bool) {
	c, ok := l.components[instID]
	if !ok {
		return nil, false
	}
	return l.lib.Macro(c.MacroName)
}

// TopFEOLLayer returns the highest-ranked layer appearing in any route
// segment of any surviving net: the "top FEOL layer" of §4.1, i.e. the
// last layer the untrusted foundry actually fabricated.
func (l *Layout) TopFEOLLayer() (string, bool) {
	best := ""
	bestRank := -1
	found := false
	for _, net := range l.nets {
		for _, seg := range net.Segments {
			rank, ok := l.Layers.Rank(seg.Layer)
			if !ok {
				continue
			}
			if !found || rank > bestRank {
				best, bestRank, found = seg.Layer, rank, true
			}
		}
	}
	return best, found
}
