package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LayerOrder gives every metal/poly layer name a total order: poly is
// lowest, then metal1 < metal2 < … < metal10, matching §3's definition.
type LayerOrder struct {
	rank map[string]int
}

// DefaultLayerOrder builds the reference library's layer stack: poly
// followed by metal1..metalN.
func DefaultLayerOrder(metalCount int) LayerOrder {
	rank := make(map[string]int, metalCount+1)
	rank["poly"] = 0
	for i := 1; i <= metalCount; i++ {
		rank[fmt.Sprintf("metal%d", i)] = i
	}
	return LayerOrder{rank: rank}
}

// Rank returns layer's position in the order, and whether it is known.
func (o LayerOrder) Rank(layer string) (int, bool) {
	r, ok := o.rank[layer]
	return r, ok
}

// Less reports whether a is strictly below b in the layer order. Unknown
// layers sort after every known layer, deterministically by name, so a
// malformed layer name never panics a comparison.
func (o LayerOrder) Less(a, b string) bool {
	ra, aok := o.rank[a]
	rb, bok := o.rank[b]
	switch {
	case aok && bok:
		return ra < rb
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	default:
		return a < b
	}
}

// Layers returns every layer name known to the order, sorted from lowest
// rank (poly) to highest. internal/splitter uses this to enumerate the
// candidate set for its back-end/front-end layer partition.
func (o LayerOrder) Layers() []string {
	names := make([]string, 0, len(o.rank))
	for name := range o.rank {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return o.rank[names[i]] < o.rank[names[j]] })
	return names
}

// ViaLayerIndex parses a via name of the form "viaK" and returns K, the
// index of the lower layer it bridges (via K connects layer rank K to
// K+1). Returns ok=false for anything not matching that shape.
func ViaLayerIndex(viaName string) (int, bool) {
	const prefix = "via"
	if !strings.HasPrefix(viaName, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(viaName[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
