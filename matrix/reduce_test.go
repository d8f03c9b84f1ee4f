package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milo/matrix"
)

// Deterministic pseudo-random binary indicators of various shapes.
func binaryDense(t *testing.T, r, c, seed int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if (i*31+j*17+seed)%3 == 0 {
				require.NoError(t, d.Set(i, j, 1))
			}
		}
	}

	return d
}

func TestCheckBinary_FlipAnyEntry(t *testing.T) {
	for seed, shape := range [][2]int{{1, 1}, {3, 4}, {7, 2}, {5, 5}} {
		d := binaryDense(t, shape[0], shape[1], seed)
		require.True(t, matrix.CheckBinary(d))

		sparse, err := matrix.NewCSCFromMatrix(d)
		require.NoError(t, err)
		require.True(t, matrix.CheckBinary(sparse))

		for i := 0; i < shape[0]; i++ {
			for j := 0; j < shape[1]; j++ {
				c := d.Clone()
				require.NoError(t, c.Set(i, j, 2))
				require.False(t, matrix.CheckBinary(c), "shape %v flip (%d,%d)", shape, i, j)

				cs, err := matrix.NewCSCFromMatrix(c)
				require.NoError(t, err)
				require.False(t, matrix.CheckBinary(cs))
			}
		}
	}
}

func TestCheckBinary_NonIntegerValues(t *testing.T) {
	for _, v := range []float64{0.5, -1, math.NaN(), math.Inf(1)} {
		m, err := matrix.NewCSCFromTriplets(2, 2, []int{0}, []int{0}, []float64{v})
		require.NoError(t, err)
		require.False(t, matrix.CheckBinary(m), "value %v", v)
	}
	require.False(t, matrix.CheckBinary(nil))

	diag, err := matrix.NewDiagonal([]float64{1, 0, 1})
	require.NoError(t, err)
	require.True(t, matrix.CheckBinary(diag))
}

func TestIsZero(t *testing.T) {
	for seed, shape := range [][2]int{{2, 3}, {4, 4}} {
		d := binaryDense(t, shape[0], shape[1], seed)
		zero, err := matrix.IsZero(d)
		require.NoError(t, err)
		require.False(t, zero)

		empty, err := matrix.NewDense(shape[0], shape[1])
		require.NoError(t, err)
		zero, err = matrix.IsZero(empty)
		require.NoError(t, err)
		require.True(t, zero)
	}

	_, err := matrix.IsZero(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestReductions(t *testing.T) {
	d, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	rs, err := matrix.RowSums(d)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, rs)

	cs, err := matrix.ColSums(d)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 7, 9}, cs)

	diag, err := matrix.NewDiagonal([]float64{1, 2})
	require.NoError(t, err)
	cs, err = matrix.ColSums(diag)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, cs)

	total, err := matrix.Total(d)
	require.NoError(t, err)
	require.Equal(t, 21.0, total)

	_, err = matrix.ColSums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
