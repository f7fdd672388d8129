// Package mincostflow computes a minimum-cost maximum-flow over a small
// capacitated, costed directed network: the super-source/super-sink pin
// graph that the attack engine builds from a compatibility and distance
// matrix (see internal/distmatrix).
//
// The solver runs successive shortest augmenting paths (SSP): each
// iteration finds a shortest path from source to sink in the current
// residual network using Dijkstra over reduced costs (Johnson's vertex
// potentials), then pushes flow equal to the bottleneck residual
// capacity along that path. Because every original arc cost is
// non-negative, the first iteration's potentials are all zero and every
// subsequent iteration's reduced costs stay non-negative, so plain
// Dijkstra (no Bellman-Ford) suffices throughout.
//
// Complexity:
//
//   - Time:   O(F · (V + E) log V) where F is the number of augmenting
//     iterations (bounded by the number of saturated arcs).
//   - Memory: O(V + E).
//
// Determinism: arcs are visited in the insertion order recorded by
// Build, and Dijkstra's tie-breaking falls back to lexicographic
// comparison of node IDs, so two runs over the same Network
// produce byte-identical flow assignments.
package mincostflow
