package nhoods_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

// Six cells, three neighbourhoods:
//
//	n0 = {0,1,2,3}  n1 = {2,3,4}  n2 = {4,5}
//
// Shared cells: n0∩n1 = 2, n1∩n2 = 1, n0∩n2 = 0.
var testMembers = [][]int{{0, 1, 2, 3}, {2, 3, 4}, {4, 5}}

var testNhoodNames = []string{"n0", "n1", "n2"}

// Two features over six cells.
var testExpr = []float64{
	1, 2, 3, 4, 5, 6,
	10, 0, 0, 0, 0, 20,
}

// Expected means, features × neighbourhoods.
var testMeans = [][]float64{
	{2.5, 4, 5.5},
	{2.5, 0, 10},
}

func mustIndicator(t *testing.T) *matrix.CSC {
	t.Helper()
	x, err := matrix.NewIndicator(6, testMembers, testNhoodNames)
	require.NoError(t, err)

	return x
}

func mustDenseIndicator(t *testing.T) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(6, 3)
	require.NoError(t, err)
	for j, cells := range testMembers {
		for _, c := range cells {
			require.NoError(t, d.Set(c, j, 1))
		}
	}
	require.NoError(t, d.SetNames(nil, testNhoodNames))

	return d
}

func mustExpr(t *testing.T) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(2, 6, testExpr)
	require.NoError(t, err)
	require.NoError(t, d.SetNames([]string{"g0", "g1"}, nil))

	return d
}

func mustExperiment(t *testing.T) *milo.Experiment {
	t.Helper()
	e, err := milo.New(milo.Assay{Name: "logcounts", Data: mustExpr(t)})
	require.NoError(t, err)
	e, err = e.WithNhoods(mustIndicator(t))
	require.NoError(t, err)

	return e
}

// requireValues compares every entry of m against want (row-major).
func requireValues(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows())
	for i, row := range want {
		require.Equal(t, len(row), m.Cols())
		for j, w := range row {
			got, err := m.At(i, j)
			require.NoError(t, err)
			require.Equal(t, w, got, "entry (%d,%d)", i, j)
		}
	}
}
