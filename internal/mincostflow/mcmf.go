package mincostflow

import (
	"container/heap"
	"math"
)

// Solve runs successive shortest augmenting paths against n and returns the
// resulting flow. n must have had SetSource/SetSink called. The network is
// mutated in place (residual capacities are consumed); callers that need the
// original Network afterwards should rebuild it.
func Solve(n *Network, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if n.source == "" || !n.nodes[n.source] {
		return nil, ErrNoSuperSource
	}
	if n.sink == "" || !n.nodes[n.sink] {
		return nil, ErrNoSuperSink
	}

	if cfg.SourceCap > 0 {
		for i := range n.arcs[n.source] {
			if n.arcs[n.source][i].original >= 0 {
				n.arcs[n.source][i].cap = cfg.SourceCap
			}
		}
	}

	potential := make(map[string]int64, len(n.order))
	for _, v := range n.order {
		potential[v] = 0
	}

	res := &Result{ArcFlow: make(map[int]int64, len(n.arcOwner))}

	for {
		dist, prevNode, prevIdx, reached := shortestReducedPath(n, potential)
		if !reached[n.sink] {
			break
		}

		for _, v := range n.order {
			if reached[v] {
				potential[v] += dist[v]
			}
		}

		// Find bottleneck residual capacity along the recovered path.
		bottleneck := int64(math.MaxInt64)
		for v := n.sink; v != n.source; v = prevNode[v] {
			u := prevNode[v]
			a := n.arcs[u][prevIdx[v]]
			if a.cap < bottleneck {
				bottleneck = a.cap
			}
		}

		// Push flow and record it against original arc indices.
		for v := n.sink; v != n.source; v = prevNode[v] {
			u := prevNode[v]
			idx := prevIdx[v]
			a := &n.arcs[u][idx]
			a.cap -= bottleneck
			rev := &n.arcs[a.to][a.reverse]
			rev.cap += bottleneck

			if a.original >= 0 {
				res.ArcFlow[a.original] += bottleneck
			} else {
				// traversing a reverse arc cancels flow previously pushed on its twin
				twinOriginal := n.arcs[v][a.reverse].original
				if twinOriginal >= 0 {
					res.ArcFlow[twinOriginal] -= bottleneck
				}
			}
		}

		res.MaxFlow += bottleneck
		res.MinCost += bottleneck * (potential[n.sink] - potential[n.source])
	}

	return res, nil
}

// shortestReducedPath runs Dijkstra from n.source over reduced costs
// cost(u,v) + potential[u] - potential[v], which stay non-negative as long
// as potential satisfies the reduced-cost invariant established by prior
// iterations (Johnson's technique). Ties in distance are broken by
// lexicographic node ID so repeated Solve calls over equal inputs always
// walk the same augmenting path.
func shortestReducedPath(n *Network, potential map[string]int64) (
	dist map[string]int64, prevNode map[string]string, prevIdx map[string]int, reached map[string]bool,
) {
	dist = make(map[string]int64, len(n.order))
	prevNode = make(map[string]string, len(n.order))
	prevIdx = make(map[string]int, len(n.order))
	reached = make(map[string]bool, len(n.order))

	for _, v := range n.order {
		dist[v] = math.MaxInt64
	}
	dist[n.source] = 0

	pq := make(mcmfPQ, 0, len(n.order))
	heap.Init(&pq)
	heap.Push(&pq, &mcmfItem{id: n.source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*mcmfItem)
		u := item.id
		if reached[u] {
			continue
		}
		if item.dist != dist[u] {
			continue // stale lazy-decrease-key entry
		}
		reached[u] = true

		for i, a := range n.arcs[u] {
			if a.cap <= 0 {
				continue
			}
			reduced := a.cost + potential[u] - potential[a.to]
			nd := dist[u] + reduced
			if nd < dist[a.to] {
				dist[a.to] = nd
				prevNode[a.to] = u
				prevIdx[a.to] = i
				heap.Push(&pq, &mcmfItem{id: a.to, dist: nd})
			}
		}
	}

	return dist, prevNode, prevIdx, reached
}

type mcmfItem struct {
	id   string
	dist int64
}

type mcmfPQ []*mcmfItem

func (pq mcmfPQ) Len() int { return len(pq) }
func (pq mcmfPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq mcmfPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *mcmfPQ) Push(x interface{}) { *pq = append(*pq, x.(*mcmfItem)) }
func (pq *mcmfPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
