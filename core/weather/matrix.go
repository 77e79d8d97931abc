package weather

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TransitionMatrix is a row-stochastic N x N matrix: row i is the probability
// distribution of the next cell given the current cell i.
type TransitionMatrix struct {
	m *mat.Dense
}

// newCountMatrix returns an n x n matrix with every count set to one, so that
// no transition ends up with zero probability.
func newCountMatrix(n int) *TransitionMatrix {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	return &TransitionMatrix{m: mat.NewDense(n, n, data)}
}

func (t *TransitionMatrix) count(from, to int) {
	t.m.Set(from, to, t.m.At(from, to)+1)
}

// normalize scales every row so that it sums to one.
func (t *TransitionMatrix) normalize() {
	n, _ := t.m.Dims()
	for i := 0; i < n; i++ {
		row := t.m.RawRowView(i)
		sum := floats.Sum(row)
		if sum > 0 {
			floats.Scale(1/sum, row)
		}
	}
}

// Size returns N.
func (t *TransitionMatrix) Size() int {
	n, _ := t.m.Dims()
	return n
}

// At returns the probability of moving from cell i to cell j.
func (t *TransitionMatrix) At(i, j int) float64 { return t.m.At(i, j) }

// Row returns a copy of row i.
func (t *TransitionMatrix) Row(i int) []float64 {
	return mat.Row(nil, i, t.m)
}

// RowSums returns the sum of every row.
func (t *TransitionMatrix) RowSums() []float64 {
	n, _ := t.m.Dims()
	sums := make([]float64, n)
	for i := range sums {
		sums[i] = floats.Sum(t.m.RawRowView(i))
	}
	return sums
}

// Matrix exposes the matrix read-only.
func (t *TransitionMatrix) Matrix() mat.Matrix { return t.m }

// Next walks row from in column order, accumulating probability until the
// cumulative mass exceeds r. The last column is returned when rounding leaves
// r uncovered.
func (t *TransitionMatrix) Next(from int, r float64) int {
	row := t.m.RawRowView(from)
	acc := 0.0
	for j, p := range row {
		acc += p
		if acc > r {
			return j
		}
	}
	return len(row) - 1
}
