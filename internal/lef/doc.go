// Package lef reads the standard-cell library format: one MACRO block per
// cell type, each declaring its SIZE and a PIN block per pin. The grammar
// is intentionally a flat, line-oriented subset of real LEF rather than a
// byte-for-byte implementation of the industry format — §1 of spec.md
// scopes the library parser out of the attack engine's core and calls for
// "a clean reimplementation [that] supplies the data model described in
// §3 and §6", not a full LEF/DEF compiler.
//
// Parsing is a small pushdown automaton: a single explicit stack of
// section states (one entry per open MACRO/PIN block), each exposing a
// statement method that consumes one line's tokens and reports whether
// its block just closed. This replaces the reference tool's dynamic,
// isinstance-based dispatch with one flat per-state keyword switch.
package lef
