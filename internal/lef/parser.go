package lef

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/opensplit/feolattack/internal/model"
)

// Sentinel parse errors, wrapped with line context by Parse.
var (
	ErrUnexpectedKeyword  = errors.New("lef: unexpected keyword")
	ErrUnexpectedEnd      = errors.New("lef: unexpected END")
	ErrMalformedStatement = errors.New("lef: malformed statement")
	ErrUnexpectedEOF      = errors.New("lef: unexpected end of file inside an open block")
)

// stepOutcome is what a section's statement wants the driving loop to do
// next: pop the section itself, and/or push a freshly opened nested one.
type stepOutcome struct {
	pop  bool
	push section
}

// section is one pushed parser state.
type section interface {
	statement(tokens []string) (stepOutcome, error)
}

// Parse reads a cell library from r. Each MACRO block becomes one
// model.Macro, added to the returned Library in declaration order.
func Parse(r io.Reader) (*model.Library, error) {
	lib := model.NewLibrary()
	scanner := bufio.NewScanner(r)
	var stack []section
	var openMacro *macroSection
	line := 0

	for scanner.Scan() {
		line++
		tokens := tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		if len(stack) == 0 {
			if tokens[0] != "MACRO" {
				return nil, errors.Wrapf(ErrUnexpectedKeyword, "line %d: %q (expected MACRO)", line, tokens[0])
			}
			if len(tokens) < 2 {
				return nil, errors.Wrapf(ErrMalformedStatement, "line %d: MACRO needs a name", line)
			}
			openMacro = &macroSection{macro: &model.Macro{Name: tokens[1], Pins: map[string]model.MacroPin{}}}
			stack = append(stack, openMacro)
			continue
		}

		top := stack[len(stack)-1]
		outcome, err := top.statement(tokens)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if outcome.pop {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				if err := lib.AddMacro(openMacro.macro); err != nil {
					return nil, errors.Wrapf(err, "line %d", line)
				}
				openMacro = nil
			}
		}
		if outcome.push != nil {
			stack = append(stack, outcome.push)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(stack) > 0 {
		return nil, ErrUnexpectedEOF
	}
	return lib, nil
}

// macroSection accumulates a MACRO block's SIZE and nested PIN blocks.
type macroSection struct {
	macro *model.Macro
}

func (m *macroSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "SIZE":
		if len(tokens) < 3 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "SIZE needs width and height")
		}
		w, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "SIZE width")
		}
		h, err := strconv.ParseInt(tokens[2], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "SIZE height")
		}
		m.macro.Width, m.macro.Height = w, h
		return stepOutcome{}, nil
	case "PIN":
		if len(tokens) < 2 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "PIN needs a name")
		}
		return stepOutcome{push: &pinSection{owner: m, name: tokens[1]}}, nil
	case "END":
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in MACRO: %q", tokens[0])
	}
}

// pinSection accumulates one PIN block, writing the finished pin back into
// its owning macro when it pops.
type pinSection struct {
	owner *macroSection
	name  string
	pin   model.MacroPin
}

func (p *pinSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "DIRECTION":
		if len(tokens) < 2 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "DIRECTION needs a value")
		}
		dir, err := model.ParseDirection(tokens[1])
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "DIRECTION")
		}
		p.pin.Direction = dir
		return stepOutcome{}, nil
	case "LAYER":
		if len(tokens) < 2 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "LAYER needs a value")
		}
		p.pin.Layer = tokens[1]
		return stepOutcome{}, nil
	case "END":
		p.owner.macro.Pins[p.name] = p.pin
		p.owner.macro.PinOrder = append(p.owner.macro.PinOrder, p.name)
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in PIN: %q", tokens[0])
	}
}

// tokenize splits one line into whitespace-separated fields, dropping a
// trailing "#"-prefixed comment.
func tokenize(line string) []string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.Fields(line)
}
