package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a small dense row major matrix, used for element matrices and
// tensor scales
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	return Matrix{m}
}

// NewMatrixFromRows copies a row list, all rows must have the same length
func NewMatrixFromRows(rows [][]float64) (R Matrix, err error) {
	var (
		nr = len(rows)
		nc int
	)
	if nr == 0 {
		err = fmt.Errorf("unable to build a matrix without rows")
		return
	}
	if nc = len(rows[0]); nc == 0 {
		err = fmt.Errorf("unable to build a matrix without columns")
		return
	}
	data := make([]float64, 0, nr*nc)
	for i, row := range rows {
		if len(row) != nc {
			err = fmt.Errorf("ragged matrix: row %d has %d columns, expected %d", i, len(row), nc)
			return
		}
		data = append(data, row...)
	}
	R = NewMatrix(nr, nc, data)
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int) {
	if m.M == nil {
		return 0, 0
	}
	return m.M.Dims()
}
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) IsEmpty() bool             { return m.M == nil || m.M.IsEmpty() }

// Row returns a view of row i, the slice aliases the matrix storage
func (m Matrix) Row(i int) []float64 { return m.M.RawRowView(i) }

func (m Matrix) Col(j int) (r []float64) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	r = make([]float64, nr)
	mat.Col(r, j, m.M)
	return
}

func (m Matrix) RowSum(i int) float64 { return floats.Sum(m.Row(i)) }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	R = Matrix{mat.DenseCopyOf(m.M)}
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	R.M.Copy(m.M.T())
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.Dims()
		_, ncA = A.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

func (m Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}
