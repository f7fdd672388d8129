// Package fixtures builds small, deterministic in-memory layouts for the
// benchmark scenarios of spec.md §8 (S1-S6), the way builder.CompleteBipartite
// in the reference corpus builds deterministic synthetic graphs: every
// instance, pin, and net gets a stable, predictable ID, and nothing is
// read from disk. internal/lef and internal/def round-trip to and from
// text; these fixtures skip that step entirely and construct the model
// types directly, so tests stay fast and the expected wiring is explicit
// at the call site rather than buried in a checked-in DEF file.
package fixtures

import (
	"fmt"

	"github.com/opensplit/feolattack/internal/model"
)

// Standard-cell footprints used by every scenario. Real numbers don't
// matter here, only that they're consistent enough to place components
// without overlap and to give cell-pin bounding boxes a non-zero size.
const (
	invWidth, invHeight     int64 = 800, 2000
	nand2Width, nand2Height int64 = 1200, 2000
)

func invMacro() *model.Macro {
	return &model.Macro{
		Name:   "INV_X1",
		Width:  invWidth,
		Height: invHeight,
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input, Layer: "metal1"},
			"Z": {Direction: model.Output, Layer: "metal1"},
		},
		PinOrder: []string{"A", "Z"},
	}
}

func nand2Macro() *model.Macro {
	return &model.Macro{
		Name:   "NAND2_X1",
		Width:  nand2Width,
		Height: nand2Height,
		Pins: map[string]model.MacroPin{
			"A": {Direction: model.Input, Layer: "metal1"},
			"B": {Direction: model.Input, Layer: "metal1"},
			"Y": {Direction: model.Output, Layer: "metal1"},
		},
		PinOrder: []string{"A", "B", "Y"},
	}
}

// Builder assembles a Library and a Layout together, one instance/pin/net
// at a time, in the style of the reference corpus's graph constructors:
// deterministic IDs, no randomness, every call validated immediately
// against the schema invariants model.Layout already enforces.
type Builder struct {
	lib    *model.Library
	layout *model.Layout

	// topFEOLLayer and climbingVia name the layer the (simulated) split
	// stops at and the via that would have continued into the censored
	// layers above it — used by Dangling to build a realistic stub.
	topFEOLLayer string
	climbingVia  string
}

// NewBuilder returns a Builder backed by a fresh library containing the
// two standard cells every scenario uses, and an empty layout with the
// given die area and metal stack depth. topFEOLLayer/climbingVia describe
// where a dangling net's stub climbs to, e.g. ("metal2", "via2") for a
// layout split at metal3.
func NewBuilder(design string, metalCount int, die model.DieArea, topFEOLLayer, climbingVia string) *Builder {
	lib := model.NewLibrary()
	if err := lib.AddMacro(invMacro()); err != nil {
		panic(err) // fixture construction only; a duplicate macro here is a programming error
	}
	if err := lib.AddMacro(nand2Macro()); err != nil {
		panic(err)
	}
	layout := model.NewLayout(lib, design, die, model.DefaultLayerOrder(metalCount))
	return &Builder{lib: lib, layout: layout, topFEOLLayer: topFEOLLayer, climbingVia: climbingVia}
}

// Layout returns the assembled layout. Call this once every Place/Pin/Net
// call has been made.
func (b *Builder) Layout() *model.Layout { return b.layout }

// Library returns the backing cell library.
func (b *Builder) Library() *model.Library { return b.lib }

// Place adds a component instance, panicking on a schema violation (a
// fixture bug, not a runtime condition callers need to handle).
func (b *Builder) Place(id, macro string, x, y int64) {
	c := &model.Component{InstID: id, MacroName: macro, Placement: model.Point{X: x, Y: y}, Orientation: "N"}
	if err := b.layout.AddComponent(c); err != nil {
		panic(fmt.Errorf("fixtures: placing %s: %w", id, err))
	}
}

// PrimaryPin adds a design-level I/O pin at the given location.
func (b *Builder) PrimaryPin(name string, dir model.Direction, x, y int64) {
	p := &model.Pin{Name: name, Direction: dir, Layer: "metal1", Point: model.Point{X: x, Y: y}}
	if err := b.layout.AddPrimaryPin(p); err != nil {
		panic(fmt.Errorf("fixtures: adding primary pin %s: %w", name, err))
	}
}

// Wired adds a net that is already fully connected in this (simulated)
// FEOL-only view: every ref it's given is electrically joined without
// needing any reconstruction, the way a net survives intact when none of
// its routing happens to cross the split layer.
func (b *Builder) Wired(name string, at model.Point, refs ...model.CellPinRef) {
	net := &model.Net{
		Name:     name,
		Segments: []model.RouteSegment{{Layer: "metal1", Points: []model.Point{at}}},
		CompPins: refs,
	}
	if err := b.layout.AddNet(net); err != nil {
		panic(fmt.Errorf("fixtures: wiring net %s: %w", name, err))
	}
}

// Dangling adds a singleton net for one pin, with a two-point stub
// (anchor -> climbing via) that gives internal/netgeom a real end point
// and direction rectangle to reason about, rather than a directionless
// single-point stub. anchor is the point the route approaches from; via
// is where it climbs into the censored layers.
func (b *Builder) Dangling(name string, ref model.CellPinRef, anchor, via model.Point) {
	net := &model.Net{
		Name: name,
		Segments: []model.RouteSegment{{
			Layer:  b.topFEOLLayer,
			Points: []model.Point{anchor, via},
			EndVia: &model.Via{Name: b.climbingVia, Point: via},
		}},
		CompPins: []model.CellPinRef{ref},
	}
	if err := b.layout.AddNet(net); err != nil {
		panic(fmt.Errorf("fixtures: dangling net %s: %w", name, err))
	}
}

// CellPin names a cell instance's pin as a CellPinRef.
func CellPin(instance, pin string) model.CellPinRef {
	return model.CellPinRef{Instance: instance, Pin: pin}
}

// PrimaryRef names a primary pin as a CellPinRef, for use in Wired nets.
func PrimaryRef(name string) model.CellPinRef {
	return model.CellPinRef{Instance: model.PrimaryPinInstance, Pin: name}
}
