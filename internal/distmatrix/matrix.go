// Package distmatrix computes the compatibility/distance matrix between
// every (source, sink) pin pair: C5 of the attack engine. Construction
// applies the five-case admissibility cascade of spec.md §4.5 and
// produces either a Manhattan distance or the INFEASIBLE sentinel.
package distmatrix

import (
	"fmt"

	"github.com/opensplit/feolattack/internal/model"
)

// Infeasible is the sentinel distance for a (source, sink) pair that must
// never receive a flow-network arc. Its value matches
// internal/mincostflow.Infeasible so a Matrix row can be fed straight into
// mincostflow.Edge without translation.
const Infeasible = int64(-1)

// Matrix is a dense, row-major int64 grid indexed by source then sink.
type Matrix struct {
	Sources []model.CellPinRef
	Sinks   []model.CellPinRef
	data    []int64
}

// New allocates an empty (all-zero) matrix of the given shape. Exported so
// tests can build a Matrix directly without a full
// layout pipeline; internal/distmatrix.Build is the normal constructor.
func New(sources, sinks []model.CellPinRef) *Matrix {
	return &Matrix{
		Sources: sources,
		Sinks:   sinks,
		data:    make([]int64, len(sources)*len(sinks)),
	}
}

func newMatrix(sources, sinks []model.CellPinRef) *Matrix { return New(sources, sinks) }

func (m *Matrix) index(i, j int) int { return i*len(m.Sinks) + j }

// At returns D[i][j], the distance or Infeasible between Sources[i] and Sinks[j].
func (m *Matrix) At(i, j int) int64 {
	return m.data[m.index(i, j)]
}

// Set overwrites D[i][j].
func (m *Matrix) Set(i, j int, v int64) {
	m.data[m.index(i, j)] = v
}

// Rows is len(Sources).
func (m *Matrix) Rows() int { return len(m.Sources) }

// Cols is len(Sinks).
func (m *Matrix) Cols() int { return len(m.Sinks) }

// String renders the matrix for debugging, INFEASIBLE entries as "x".
func (m *Matrix) String() string {
	s := ""
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v := m.At(i, j)
			if v == Infeasible {
				s += "  x"
			} else {
				s += fmt.Sprintf(" %2d", v)
			}
		}
		s += "\n"
	}
	return s
}
