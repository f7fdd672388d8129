package def

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
	ErrUnexpectedKeyword  = errors.New("def: unexpected keyword")
	ErrMalformedStatement = errors.New("def: malformed statement")
	ErrUnexpectedEOF      = errors.New("def: unexpected end of file inside an open block")
	ErrNoDesign           = errors.New("def: missing DESIGN statement")
)

type stepOutcome struct {
	pop  bool
	push section
}

type section interface {
	statement(tokens []string) (stepOutcome, error)
}

type rawNet struct {
	name     string
	compPins []model.CellPinRef
	routes   []model.RouteSegment
}

// document accumulates every record parsed before they're handed to
// model.Layout's validating Add* methods.
type document struct {
	design     string
	haveDie    bool
	dieMin     model.Point
	dieMax     model.Point
	metalCount int
	components []*model.Component
	pins       []*model.Pin
	nets       []rawNet
}

// Parse reads a routed layout from r, validating every component/pin/net
// reference against lib via model.Layout's Add* methods.
func Parse(r io.Reader, lib *model.Library) (*model.Layout, error) {
	doc := &document{metalCount: 10}
	var stack []section
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		tokens := tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			outcome, err := top.statement(tokens)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			if outcome.pop {
				stack = stack[:len(stack)-1]
			}
			if outcome.push != nil {
				stack = append(stack, outcome.push)
			}
			continue
		}

		switch tokens[0] {
		case "DESIGN":
			if len(tokens) < 2 {
				return nil, errors.Wrapf(ErrMalformedStatement, "line %d: DESIGN needs a name", line)
			}
			doc.design = tokens[1]
		case "DIEAREA":
			pts, err := parseInts(tokens[1:])
			if err != nil || len(pts) != 4 {
				return nil, errors.Wrapf(ErrMalformedStatement, "line %d: DIEAREA needs 4 integers", line)
			}
			doc.dieMin = model.Point{X: pts[0], Y: pts[1]}
			doc.dieMax = model.Point{X: pts[2], Y: pts[3]}
			doc.haveDie = true
		case "LAYERS":
			if len(tokens) < 2 {
				return nil, errors.Wrapf(ErrMalformedStatement, "line %d: LAYERS needs a count", line)
			}
			n, err := strconv.Atoi(tokens[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: LAYERS", line)
			}
			doc.metalCount = n
		case "COMPONENTS":
			stack = append(stack, &componentsSection{doc: doc})
		case "PINS":
			stack = append(stack, &pinsSection{doc: doc})
		case "NETS":
			stack = append(stack, &netsSection{doc: doc})
		default:
			return nil, errors.Wrapf(ErrUnexpectedKeyword, "line %d: %q", line, tokens[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(stack) > 0 {
		return nil, ErrUnexpectedEOF
	}
	if doc.design == "" {
		return nil, ErrNoDesign
	}

	die := model.DieArea{Min: doc.dieMin, Max: doc.dieMax}
	layout := model.NewLayout(lib, doc.design, die, model.DefaultLayerOrder(doc.metalCount))
	for _, c := range doc.components {
		if err := layout.AddComponent(c); err != nil {
			return nil, errors.Wrap(err, "def")
		}
	}
	for _, p := range doc.pins {
		if err := layout.AddPrimaryPin(p); err != nil {
			return nil, errors.Wrap(err, "def")
		}
	}
	for _, n := range doc.nets {
		if err := layout.AddNet(&model.Net{Name: n.name, Segments: n.routes, CompPins: n.compPins}); err != nil {
			return nil, errors.Wrap(err, "def")
		}
	}
	return layout, nil
}

type componentsSection struct{ doc *document }

func (s *componentsSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "COMPONENT":
		if len(tokens) < 6 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "COMPONENT needs id macro x y orientation")
		}
		x, err := strconv.ParseInt(tokens[3], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "COMPONENT x")
		}
		y, err := strconv.ParseInt(tokens[4], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "COMPONENT y")
		}
		s.doc.components = append(s.doc.components, &model.Component{
			InstID:      tokens[1],
			MacroName:   tokens[2],
			Placement:   model.Point{X: x, Y: y},
			Orientation: tokens[5],
		})
		return stepOutcome{}, nil
	case "END":
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in COMPONENTS: %q", tokens[0])
	}
}

type pinsSection struct{ doc *document }

func (s *pinsSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "PIN":
		if len(tokens) < 6 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "PIN needs name direction layer x y")
		}
		dir, err := model.ParseDirection(tokens[2])
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "PIN direction")
		}
		x, err := strconv.ParseInt(tokens[4], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "PIN x")
		}
		y, err := strconv.ParseInt(tokens[5], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "PIN y")
		}
		s.doc.pins = append(s.doc.pins, &model.Pin{
			Name:      tokens[1],
			Direction: dir,
			Layer:     tokens[3],
			Point:     model.Point{X: x, Y: y},
		})
		return stepOutcome{}, nil
	case "END":
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in PINS: %q", tokens[0])
	}
}

type netsSection struct{ doc *document }

func (s *netsSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "NET":
		if len(tokens) < 2 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "NET needs a name")
		}
		return stepOutcome{push: &netSection{doc: s.doc, net: rawNet{name: tokens[1]}}}, nil
	case "END":
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in NETS: %q", tokens[0])
	}
}

type netSection struct {
	doc *document
	net rawNet
}

func (s *netSection) statement(tokens []string) (stepOutcome, error) {
	switch tokens[0] {
	case "COMPPIN":
		if len(tokens) < 3 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "COMPPIN needs instance and pin")
		}
		s.net.compPins = append(s.net.compPins, model.CellPinRef{Instance: tokens[1], Pin: tokens[2]})
		return stepOutcome{}, nil
	case "ROUTE":
		if len(tokens) < 4 || (len(tokens)-2)%2 != 0 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "ROUTE needs a layer and an even count of coordinates")
		}
		coords, err := parseInts(tokens[2:])
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "ROUTE coordinates")
		}
		points := make([]model.Point, 0, len(coords)/2)
		for i := 0; i < len(coords); i += 2 {
			points = append(points, model.Point{X: coords[i], Y: coords[i+1]})
		}
		s.net.routes = append(s.net.routes, model.RouteSegment{Layer: tokens[1], Points: points})
		return stepOutcome{}, nil
	case "VIA":
		if len(tokens) < 4 || len(s.net.routes) == 0 {
			return stepOutcome{}, errors.Wrap(ErrMalformedStatement, "VIA needs a name, x, y, and a preceding ROUTE")
		}
		x, err := strconv.ParseInt(tokens[2], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "VIA x")
		}
		y, err := strconv.ParseInt(tokens[3], 10, 64)
		if err != nil {
			return stepOutcome{}, errors.Wrap(err, "VIA y")
		}
		last := &s.net.routes[len(s.net.routes)-1]
		last.EndVia = &model.Via{Name: tokens[1], Point: model.Point{X: x, Y: y}}
		return stepOutcome{}, nil
	case "END":
		s.doc.nets = append(s.doc.nets, s.net)
		return stepOutcome{pop: true}, nil
	default:
		return stepOutcome{}, errors.Wrapf(ErrUnexpectedKeyword, "in NET: %q", tokens[0])
	}
}

func tokenize(line string) []string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.Fields(line)
}

func parseInts(tokens []string) ([]int64, error) {
	out := make([]int64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
