package mincostflow

// Reserved node IDs for the two super-terminals. Real pin identifiers are
// always "instance:pin" or "PIN:name" per internal/model, so these literals
// cannot collide with them.
const (
	SuperSource = "__super_source__"
	SuperSink   = "__super_sink__"
)

// Infeasible mirrors internal/distmatrix.Infeasible: a distance matrix entry
// with this value means the pair must not receive an arc at all. Declared
// here too so callers that only import mincostflow (tests, fixtures) do not
// need to pull in distmatrix just for the sentinel.
const Infeasible = int64(-1)

// Edge is one candidate (source, sink) pairing with its distance cost, as
// read off a row of the compatibility/distance matrix.
type Edge struct {
	Source string
	Sink   string
	Cost   int64 // Manhattan distance; ignored if infeasible
}

// Build constructs the bipartite super-source/super-sink network described
// in spec.md §4.6: SuperSource -> each source pin (capacity sourceCap),
// each sink pin -> SuperSink (capacity 1), and one arc per feasible
// (source, sink) edge carrying its distance as cost. Infeasible edges
// (cost == Infeasible) are omitted entirely, matching network_attack.py's
// build_distances/graph-construction pair: every pair not marked
// Infeasible becomes an arc, including already-wired pairs at cost 0.
//
// sourceCap, if 0, resolves to the spec default max(len(sinks), 1).
func Build(sources, sinks []string, edges []Edge, sourceCap int64) *Network {
	if sourceCap == 0 {
		sourceCap = int64(len(sinks))
		if sourceCap == 0 {
			sourceCap = 1
		}
	}

	n := NewNetwork()
	n.AddNode(SuperSource)
	n.AddNode(SuperSink)
	for _, s := range sources {
		n.AddNode(s)
	}
	for _, k := range sinks {
		n.AddNode(k)
	}
	n.SetSource(SuperSource)
	n.SetSink(SuperSink)

	for _, s := range sources {
		_, _ = n.AddArc(SuperSource, s, sourceCap, 0)
	}
	for _, k := range sinks {
		_, _ = n.AddArc(k, SuperSink, 1, 0)
	}
	for _, e := range edges {
		if e.Cost == Infeasible {
			continue
		}
		_, _ = n.AddArc(e.Source, e.Sink, 1, e.Cost)
	}

	return n
}
