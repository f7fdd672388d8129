package model

import "errors"

var (
	// ErrBadDirection is returned when a pin direction is not INPUT or OUTPUT.
	ErrBadDirection = errors.New("model: pin direction must be INPUT or OUTPUT")
	// ErrUnknownMacro is returned when a component references a macro not in the library.
	ErrUnknownMacro = errors.New("model: component references unknown macro")
	// ErrUnknownMacroPin is returned when a net references a cell pin not declared on its macro.
	ErrUnknownMacroPin = errors.New("model: net references pin not declared on macro")
	// ErrUnknownComponent is returned when a net references a component instance that was never added.
	ErrUnknownComponent = errors.New("model: net references unknown component instance")
	// ErrUnknownPrimaryPin is returned when a net references a primary pin that was never added.
	ErrUnknownPrimaryPin = errors.New("model: net references unknown primary pin")
	// ErrDuplicateComponent is returned when two components share an instance ID.
	ErrDuplicateComponent = errors.New("model: duplicate component instance ID")
	// ErrDuplicatePin is returned when two primary pins share a name.
	ErrDuplicatePin = errors.New("model: duplicate primary pin name")
	// ErrDuplicateNet is returned when two nets share a name.
	ErrDuplicateNet = errors.New("model: duplicate net name")
	// ErrDuplicateMacro is returned when two macros share a name.
	ErrDuplicateMacro = errors.New("model: duplicate macro name")
)
