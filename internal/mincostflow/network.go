package mincostflow

import "fmt"

// arc is one directed edge of the residual network. Every arc added by a
// caller is paired with a reverse arc of zero capacity and negated cost;
// pushing flow along an arc increases the reverse arc's residual capacity,
// the classical residual-graph bookkeeping the teacher's max-flow code
// performs with a separate core.Graph rebuild per augmentation — here the
// pairing is kept inline in a flat slice, since costed residual arcs need
// mutable capacity rather than a new graph per step.
type arc struct {
	to       string
	cap      int64 // remaining residual capacity
	cost     int64 // cost of sending one unit along this arc
	reverse  int   // index, in the adjacency slice of `to`, of the paired reverse arc
	original int   // index into Network.arcOwner; -1 for synthetic reverse arcs
}

// Network is a small mutable directed graph with per-arc capacity and cost.
// Nodes are identified by string ID, grounded on the teacher's core.Graph
// convention of string-keyed vertices.
type Network struct {
	nodes map[string]bool
	order []string // insertion order, for deterministic iteration
	adj   map[string][]int
	arcs  map[string][]arc // adjacency-indexed arc storage, keyed by `from`

	arcOwner []arcRef // original-arc index -> (from, idx in arcs[from])

	source string
	sink   string
}

type arcRef struct {
	from string
	idx  int
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[string]bool),
		adj:   make(map[string][]int),
		arcs:  make(map[string][]arc),
	}
}

// AddNode registers a node ID. Adding the same ID twice is a no-op.
func (n *Network) AddNode(id string) {
	if n.nodes[id] {
		return
	}
	n.nodes[id] = true
	n.order = append(n.order, id)
	n.arcs[id] = nil
}

// SetSource marks id as the super-source. id must already be added.
func (n *Network) SetSource(id string) { n.source = id }

// SetSink marks id as the super-sink. id must already be added.
func (n *Network) SetSink(id string) { n.sink = id }

// AddArc adds a directed arc from -> to with the given capacity and
// non-negative cost, and returns an index identifying it for Result.ArcFlow.
func (n *Network) AddArc(from, to string, capacity, cost int64) (int, error) {
	if !n.nodes[from] || !n.nodes[to] {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnknownNode, from, to)
	}
	if capacity < 0 {
		return 0, fmt.Errorf("%w: %s -> %s cap=%d", ErrNegativeCapacity, from, to, capacity)
	}
	if cost < 0 {
		return 0, fmt.Errorf("%w: %s -> %s cost=%d", ErrNegativeCost, from, to, cost)
	}

	fwdIdx := len(n.arcs[from])
	revIdx := len(n.arcs[to])

	n.arcs[from] = append(n.arcs[from], arc{to: to, cap: capacity, cost: cost, reverse: revIdx, original: len(n.arcOwner)})
	n.arcs[to] = append(n.arcs[to], arc{to: from, cap: 0, cost: -cost, reverse: fwdIdx, original: -1})

	n.arcOwner = append(n.arcOwner, arcRef{from: from, idx: fwdIdx})

	return len(n.arcOwner) - 1, nil
}

// Nodes returns node IDs in insertion order.
func (n *Network) Nodes() []string { return n.order }
