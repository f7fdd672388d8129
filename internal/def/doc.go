// Package def reads the routed-layout format: a DESIGN name and DIEAREA,
// a COMPONENTS block of placed instances, a PINS block of primary I/O,
// and a NETS block of nets, each with its comp/pin endpoints and routed
// segments (optionally ending in a via). As with internal/lef, this is a
// clean, line-oriented reimplementation of the fields spec.md §3 and §6
// actually require, not the full industry DEF grammar.
//
// Parse accumulates raw records while walking the file with the same
// explicit-stack pushdown-automaton shape as internal/lef, then hands
// them to model.NewLayout/AddComponent/AddPrimaryPin/AddNet so every §3
// invariant (schema violations: unknown macro, unknown pin, bad
// direction) is enforced by the model package itself rather than
// duplicated here.
package def
