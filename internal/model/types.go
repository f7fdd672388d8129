// Package model is the in-memory representation of a partial (FEOL-only)
// layout and its standard-cell library: dies, macros, placed components,
// primary pins, and routed nets. It enforces the structural invariants the
// rest of the attack pipeline depends on at construction time rather than
// re-checking them on every read.
package model

import (
	"fmt"
	"sort"
)

// Point is an integer coordinate in layout database units.
type Point struct {
	X, Y int64
}

// ManhattanDistance returns |p.X-q.X| + |p.Y-q.Y|.
func (p Point) ManhattanDistance(q Point) int64 {
	return abs64(p.X-q.X) + abs64(p.Y-q.Y)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is a pin's signal direction.
type Direction int

const (
	// Input marks a pin that consumes a signal.
	Input Direction = iota
	// Output marks a pin that drives a signal.
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "OUTPUT"
	}
	return "INPUT"
}

// ParseDirection accepts the LEF/LIB spellings INPUT and OUTPUT only; any
// other direction (e.g. INOUT) is rejected per the §3 invariant that every
// pin direction is INPUT or OUTPUT.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "INPUT":
		return Input, nil
	case "OUTPUT":
		return Output, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadDirection, s)
	}
}

// DieArea is the axis-aligned rectangle enclosing the layout.
type DieArea struct {
	Min, Max Point
}

// Contains reports whether p lies within the die area, inclusive.
func (d DieArea) Contains(p Point) bool {
	return p.X >= d.Min.X && p.X <= d.Max.X && p.Y >= d.Min.Y && p.Y <= d.Max.Y
}

// MacroPin describes one pin on a library cell: its direction, the top
// metal layer its shape sits on, and an (optional) shape rectangle
// relative to the macro's origin.
type MacroPin struct {
	Direction Direction
	Layer     string
	Shape     DieArea
}

// Macro is a standard-cell type from the library: its footprint and the
// pins it exposes.
type Macro struct {
	Name   string
	Width  int64
	Height int64
	Pins   map[string]MacroPin
	// PinOrder records pin declaration order as read from the library
	// file, so instance connections can be emitted deterministically. If
	// empty, OrderedPinNames falls back to sorted pin names.
	PinOrder []string
}

// OrderedPinNames returns every pin name in PinOrder if set, else sorted.
func (m *Macro) OrderedPinNames() []string {
	if len(m.PinOrder) > 0 {
		return m.PinOrder
	}
	names := make([]string, 0, len(m.Pins))
	for name := range m.Pins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Component is a placed instance of a Macro.
type Component struct {
	InstID      string
	MacroName   string
	Placement   Point
	Orientation string
}

// Pin is a primary (design-level) I/O.
type Pin struct {
	Name      string
	Direction Direction
	Layer     string
	Point     Point
}

// Via is the terminating via of a route segment, bridging its layer to the
// next one up.
type Via struct {
	Name  string
	Point Point
}

// RouteSegment is an ordered sequence of points on a single layer,
// optionally terminated by a via into the next layer.
type RouteSegment struct {
	Layer   string
	Points  []Point
	EndVia  *Via
}

// CellPinRef names one electrical endpoint of a Net: either a cell
// instance's pin, or a primary pin when Instance == PrimaryPinInstance.
type CellPinRef struct {
	Instance string
	Pin      string
}

// PrimaryPinInstance is the sentinel instance ID denoting a primary I/O
// endpoint, matching the reference source's use of the literal "PIN".
const PrimaryPinInstance = "PIN"

// IsPrimary reports whether this reference names a primary pin.
func (r CellPinRef) IsPrimary() bool { return r.Instance == PrimaryPinInstance }

// ID returns a canonical string identity for this reference, suitable as a
// graph/network node ID (e.g. internal/mincostflow).
func (r CellPinRef) ID() string { return r.Instance + ":" + r.Pin }

// Net is an electrical equipotential: a set of route segments plus the
// cell/primary pins it joins.
type Net struct {
	Name     string
	Segments []RouteSegment
	CompPins []CellPinRef
}
