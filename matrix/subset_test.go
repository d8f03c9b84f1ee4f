package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
)

func TestSubsetRows_Dense(t *testing.T) {
	d, err := matrix.NewDenseFrom(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.NoError(t, d.SetNames([]string{"a", "b", "c"}, []string{"x", "y"}))

	s, err := matrix.SubsetRows(d, []int{2, 0, 2})
	require.NoError(t, err)
	require.IsType(t, &matrix.Dense{}, s)
	require.Equal(t, []string{"c", "a", "c"}, s.RowNames())
	require.Equal(t, []string{"x", "y"}, s.ColNames())
	require.Equal(t, []float64{11, 3, 11}, s.RowSums())
}

func TestSubsetRows_CSCStaysSparse(t *testing.T) {
	m := sampleCSC(t)
	s, err := matrix.SubsetRows(m, []int{2, 1})
	require.NoError(t, err)
	require.IsType(t, &matrix.CSC{}, s)
	v, _ := s.At(0, 0)
	require.Equal(t, 4.0, v)
	v, _ = s.At(1, 2)
	require.Equal(t, 3.0, v)
}

func TestSubsetRows_OtherStorage(t *testing.T) {
	diag, err := matrix.NewDiagonal([]float64{1, 2, 3})
	require.NoError(t, err)
	s, err := matrix.SubsetRows(diag, []int{1})
	require.NoError(t, err)
	require.Equal(t, 1, s.Rows())
	require.Equal(t, 3, s.Cols())
	v, _ := s.At(0, 1)
	require.Equal(t, 2.0, v)
}

func TestSubsetRows_Errors(t *testing.T) {
	m := sampleCSC(t)
	_, err := matrix.SubsetRows(m, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.SubsetRows(m, []int{3})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.SubsetRows(nil, []int{0})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAsGonum(t *testing.T) {
	m := sampleCSC(t)
	g := matrix.AsGonum(m)
	r, c := g.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)

	var prod mat.Dense
	prod.Mul(g.T(), g)
	require.Equal(t, 17.0, prod.At(0, 0)) // 1² + 4²
	require.Equal(t, 2.0, prod.At(0, 2))  // 1·2

	require.Panics(t, func() { g.At(3, 0) })

	d, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.Same(t, d.Raw(), matrix.AsGonum(d))
}
