// Package unionfind provides a path-compression, union-by-rank disjoint-set
// over string keys. internal/splitter uses it to group route segments that
// are geometrically connected into net fragments after layer filtering;
// spec.md §9 calls this out by name as the structure to use, and it is
// extracted here from the teacher's own closure-based implementation in
// prim_kruskal.Kruskal so it can be reused outside MST construction.
package unionfind

// DSU is a disjoint-set over string elements. The zero value is not usable;
// construct one with New.
type DSU struct {
	parent map[string]string
	rank   map[string]int
}

// New returns an empty disjoint-set. Elements are added lazily by Find and
// Union the first time they're seen, each starting in its own singleton set.
func New() *DSU {
	return &DSU{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

// Add registers id as a singleton set if it isn't already known. Find and
// Union do this implicitly, but Add lets a caller enumerate all known
// elements (via Groups) even for ones that never participate in a Union.
func (d *DSU) Add(id string) {
	if _, ok := d.parent[id]; !ok {
		d.parent[id] = id
		d.rank[id] = 0
	}
}

// Find returns the representative of id's set, path-compressing along the
// way. id is added as a new singleton set if not already known.
func (d *DSU) Find(id string) string {
	d.Add(id)
	for d.parent[id] != id {
		d.parent[id] = d.parent[d.parent[id]]
		id = d.parent[id]
	}
	return id
}

// Union merges the sets containing a and b, attaching the lower-rank root
// under the higher-rank one and breaking ties by incrementing the surviving
// root's rank. Returns true if a and b were in different sets.
func (d *DSU) Union(a, b string) bool {
	rootA, rootB := d.Find(a), d.Find(b)
	if rootA == rootB {
		return false
	}
	switch {
	case d.rank[rootA] < d.rank[rootB]:
		d.parent[rootA] = rootB
	case d.rank[rootA] > d.rank[rootB]:
		d.parent[rootB] = rootA
	default:
		d.parent[rootB] = rootA
		d.rank[rootA]++
	}
	return true
}

// Connected reports whether a and b are in the same set.
func (d *DSU) Connected(a, b string) bool {
	return d.Find(a) == d.Find(b)
}

// Groups returns every known element partitioned by its set's
// representative. Group membership order follows map iteration and is not
// defined; callers needing deterministic output should sort the returned slices.
func (d *DSU) Groups() map[string][]string {
	groups := make(map[string][]string)
	for id := range d.parent {
		root := d.Find(id)
		groups[root] = append(groups[root], id)
	}
	return groups
}
