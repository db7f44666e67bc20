// core/folding/nussinov/matrix.go
package nussinov

import "fmt"

// Matrix is a dense row-major n×n table of ints.
type Matrix struct {
	n    int
	cell []int
}

// NewMatrix allocates an n×n matrix filled with zeros.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, cell: make([]int, n*n)}
}

func (m *Matrix) Size() int { return m.n }

func (m *Matrix) index(i, j int) int {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		panic(fmt.Sprintf("nussinov: matrix index (%d,%d) out of range for n=%d", i, j, m.n))
	}
	return i*m.n + j
}

// At returns cell (i, j).
func (m *Matrix) At(i, j int) int { return m.cell[m.index(i, j)] }

// Set writes cell (i, j).
func (m *Matrix) Set(i, j, v int) { m.cell[m.index(i, j)] = v }
