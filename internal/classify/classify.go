// Package classify partitions every pin reachable from a layout into the
// source set (signal producers) and sink set (signal consumers) the flow
// solver connects, and synthesizes singleton nets for primary pins the
// router never touched so they remain reconstruction candidates.
package classify

import (
	"fmt"
	"sort"

	"github.com/opensplit/feolattack/internal/model"
)

// Result is the partitioned pin universe.
type Result struct {
	Sources []model.CellPinRef
	Sinks   []model.CellPinRef
}

// Classify synthesizes singleton nets for unrouted primary pins (mutating
// layout — see SynthesizeUnroutedPrimaryPins), then enumerates every
// comp_pin across all nets and partitions it per §4.3:
//
//	source: cell-pin OUTPUT, or primary pin INPUT (primary inputs drive the design)
//	sink:   cell-pin INPUT, or primary pin OUTPUT
func Classify(layout *model.Layout) (*Result, error) {
	if err := SynthesizeUnroutedPrimaryPins(layout); err != nil {
		return nil, err
	}

	res := &Result{}
	seen := make(map[model.CellPinRef]bool)
	for _, net := range layout.Nets() {
		for _, ref := range net.CompPins {
			if seen[ref] {
				continue
			}
			seen[ref] = true

			dir, err := pinDirection(layout, ref)
			if err != nil {
				return nil, fmt.Errorf("classify: %w", err)
			}

			isSource := (ref.IsPrimary() && dir == model.Input) || (!ref.IsPrimary() && dir == model.Output)
			if isSource {
				res.Sources = append(res.Sources, ref)
			} else {
				res.Sinks = append(res.Sinks, ref)
			}
		}
	}

	sortRefs(res.Sources)
	sortRefs(res.Sinks)
	return res, nil
}

func pinDirection(layout *model.Layout, ref model.CellPinRef) (model.Direction, error) {
	if ref.IsPrimary() {
		pin, ok := layout.PrimaryPin(ref.Pin)
		if !ok {
			return 0, fmt.Errorf("%w: %s", model.ErrUnknownPrimaryPin, ref.Pin)
		}
		return pin.Direction, nil
	}
	macro, ok := layout.MacroOf(ref.Instance)
	if !ok {
		return 0, fmt.Errorf("%w: %s", model.ErrUnknownComponent, ref.Instance)
	}
	macroPin, ok := macro.Pins[ref.Pin]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", model.ErrUnknownMacroPin, ref.Instance, ref.Pin)
	}
	return macroPin.Direction, nil
}

// SynthesizeUnroutedPrimaryPins adds a singleton net — just the pin's
// placed point, on the layout's top FEOL layer — for every primary pin
// that appears in no existing net, so it remains a reconstruction
// candidate for C5/C6 rather than silently dropped.
func SynthesizeUnroutedPrimaryPins(layout *model.Layout) error {
	routed := make(map[string]bool)
	for _, net := range layout.Nets() {
		for _, ref := range net.CompPins {
			if ref.IsPrimary() {
				routed[ref.Pin] = true
			}
		}
	}

	topLayer, hasTop := layout.TopFEOLLayer()

	for _, pin := range layout.PrimaryPins() {
		if routed[pin.Name] {
			continue
		}
		layer := pin.Layer
		if hasTop {
			layer = topLayer
		}
		if _, exists := layout.Net(pin.Name); exists {
			continue // a routed net already happens to share the pin's name
		}
		err := layout.AddNet(&model.Net{
			Name:     pin.Name,
			Segments: []model.RouteSegment{{Layer: layer, Points: []model.Point{pin.Point}}},
			CompPins: []model.CellPinRef{{Instance: model.PrimaryPinInstance, Pin: pin.Name}},
		})
		if err != nil {
			return fmt.Errorf("classify: synthesize net for primary pin %s: %w", pin.Name, err)
		}
	}
	return nil
}

func sortRefs(refs []model.CellPinRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Instance != refs[j].Instance {
			return refs[i].Instance < refs[j].Instance
		}
		return refs[i].Pin < refs[j].Pin
	})
}
