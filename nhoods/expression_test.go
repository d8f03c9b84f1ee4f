package nhoods_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
	"github.com/katalvlaran/milo/nhoods"
)

func TestExpression_AllStorageCombinations(t *testing.T) {
	dx := mustDenseIndicator(t)
	sx := mustIndicator(t)
	de := mustExpr(t)
	se, err := matrix.NewCSCFromMatrix(de)
	require.NoError(t, err)

	cases := []struct {
		name  string
		x     matrix.Matrix
		exprs matrix.Matrix
	}{
		{"dense·dense", dx, de},
		{"dense·sparse", dx, se},
		{"sparse·dense", sx, de},
		{"sparse·sparse", sx, se},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := nhoods.Expression(tc.x, tc.exprs)
			require.NoError(t, err)
			requireValues(t, testMeans, res)
			require.Equal(t, []string{"g0", "g1"}, res.RowNames())
			require.Equal(t, testNhoodNames, res.ColNames())
		})
	}
}

// The mean must not depend on how cells are ordered, as long as expression
// columns and indicator rows are permuted together.
func TestExpression_CellOrderIndependent(t *testing.T) {
	perm := []int{5, 3, 1, 0, 4, 2} // new position k holds old cell perm[k]
	inv := make([]int, len(perm))
	for k, c := range perm {
		inv[c] = k
	}
	members := make([][]int, len(testMembers))
	for j, cells := range testMembers {
		for _, c := range cells {
			members[j] = append(members[j], inv[c])
		}
	}
	x, err := matrix.NewIndicator(6, members, testNhoodNames)
	require.NoError(t, err)

	data := make([]float64, len(testExpr))
	for g := 0; g < 2; g++ {
		for k, c := range perm {
			data[g*6+k] = testExpr[g*6+c]
		}
	}
	exprs, err := matrix.NewDenseFrom(2, 6, data)
	require.NoError(t, err)

	res, err := nhoods.Expression(x, exprs)
	require.NoError(t, err)
	requireValues(t, testMeans, res)
}

func TestExpression_SingletonReturnsCell(t *testing.T) {
	x, err := matrix.NewIndicator(6, [][]int{{4}}, nil)
	require.NoError(t, err)
	res, err := nhoods.Expression(x, mustExpr(t))
	require.NoError(t, err)
	requireValues(t, [][]float64{{5}, {0}}, res)
}

func TestExpression_Subsets(t *testing.T) {
	x := mustIndicator(t)
	exprs := mustExpr(t)

	byName, err := nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByName("g1", "g0")))
	require.NoError(t, err)
	requireValues(t, [][]float64{testMeans[1], testMeans[0]}, byName)
	require.Equal(t, []string{"g1", "g0"}, byName.RowNames())

	byIndex, err := nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByIndex(1)))
	require.NoError(t, err)
	requireValues(t, [][]float64{testMeans[1]}, byIndex)
	require.Equal(t, []string{"g1"}, byIndex.RowNames())

	byMask, err := nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByMask([]bool{true, false})))
	require.NoError(t, err)
	requireValues(t, [][]float64{testMeans[0]}, byMask)

	all, err := nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.Subset{}))
	require.NoError(t, err)
	requireValues(t, testMeans, all)
}

func TestExpression_SubsetErrors(t *testing.T) {
	x := mustIndicator(t)
	exprs := mustExpr(t)

	_, err := nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByName("nope")))
	require.ErrorIs(t, err, nhoods.ErrBadSubset)

	_, err = nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByMask([]bool{true})))
	require.ErrorIs(t, err, nhoods.ErrBadSubset)

	_, err = nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByMask([]bool{false, false})))
	require.ErrorIs(t, err, nhoods.ErrBadSubset)

	_, err = nhoods.Expression(x, exprs, nhoods.WithSubset(nhoods.ByIndex(2)))
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	unnamed, err := matrix.NewDenseFrom(2, 6, testExpr)
	require.NoError(t, err)
	_, err = nhoods.Expression(x, unnamed, nhoods.WithSubset(nhoods.ByName("g0")))
	require.ErrorIs(t, err, nhoods.ErrBadSubset)
}

func TestExpression_DimensionMismatch(t *testing.T) {
	exprs, err := matrix.NewDense(2, 5)
	require.NoError(t, err)
	_, err = nhoods.Expression(mustIndicator(t), exprs)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestExpression_EmptyNeighbourhood(t *testing.T) {
	x, err := matrix.NewIndicator(6, [][]int{{0, 1}, {}}, nil)
	require.NoError(t, err)

	_, err = nhoods.Expression(x, mustExpr(t))
	require.ErrorIs(t, err, nhoods.ErrEmptyNeighbourhood)

	for _, dense := range []bool{false, true} {
		var ind matrix.Matrix = x
		if dense {
			d, err := matrix.NewDense(6, 2)
			require.NoError(t, err)
			require.NoError(t, d.Set(0, 0, 1))
			require.NoError(t, d.Set(1, 0, 1))
			ind = d
		}
		res, err := nhoods.Expression(ind, mustExpr(t), nhoods.WithEmptyPolicy(nhoods.EmptyNaN))
		require.NoError(t, err)
		for g := 0; g < 2; g++ {
			v, err := res.At(g, 1)
			require.NoError(t, err)
			require.True(t, math.IsNaN(v))
		}
		v, err := res.At(0, 0)
		require.NoError(t, err)
		require.Equal(t, 1.5, v)
	}
}

func TestCalcExpression(t *testing.T) {
	e := mustExperiment(t)
	out, err := nhoods.CalcExpression(e)
	require.NoError(t, err)
	requireValues(t, testMeans, out.NhoodExpression())
	require.True(t, matrix.IsPlaceholder(e.NhoodExpression()))

	_, err = nhoods.CalcExpression(e, nhoods.WithAssay("counts"))
	require.ErrorIs(t, err, milo.ErrAssayNotFound)
}

func TestCalcExpression_Placeholder(t *testing.T) {
	e, err := milo.New(milo.Assay{Name: "logcounts", Data: mustExpr(t)})
	require.NoError(t, err)
	_, err = nhoods.CalcExpression(e)
	require.ErrorIs(t, err, milo.ErrNoNeighbourhoods)
}

func TestCalcExpressionMatrix(t *testing.T) {
	x := mustIndicator(t)
	exprs := mustExpr(t)

	e, err := nhoods.CalcExpressionMatrix(x, exprs, nhoods.WithAssay("counts"))
	require.NoError(t, err)
	require.Equal(t, []string{"counts"}, e.AssayNames())
	a, err := e.Assay("counts")
	require.NoError(t, err)
	require.Same(t, exprs, a)
	require.Same(t, x, e.Nhoods())
	requireValues(t, testMeans, e.NhoodExpression())

	_, err = nhoods.CalcExpressionMatrix(x, nil)
	require.ErrorIs(t, err, milo.ErrMissingExpression)

	_, err = nhoods.CalcExpressionMatrix(matrix.Placeholder(), exprs)
	require.ErrorIs(t, err, milo.ErrNoNeighbourhoods)
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { nhoods.WithWorkers(0) })
	require.Panics(t, func() { nhoods.WithAssay("") })
	require.Panics(t, func() { nhoods.WithLogger(nil) })
	require.Panics(t, func() { nhoods.WithEmptyPolicy(nhoods.EmptyPolicy(7)) })
}

// Non-finite values in cells outside a neighbourhood must not leak into its
// mean, whatever the storage of either operand.
func TestExpression_NonFiniteOutsideMembers(t *testing.T) {
	data := append([]float64(nil), testExpr...)
	data[5] = math.NaN()  // g0, cell 5: member of n2 only
	data[6] = math.Inf(1) // g1, cell 0: member of n0 only
	de, err := matrix.DenseOf(mat.NewDense(2, 6, data))
	require.NoError(t, err)
	require.NoError(t, de.SetNames([]string{"g0", "g1"}, nil))
	se, err := matrix.NewCSCFromMatrix(de)
	require.NoError(t, err)

	cases := []struct {
		name  string
		x     matrix.Matrix
		exprs matrix.Matrix
	}{
		{"dense·dense", mustDenseIndicator(t), de},
		{"dense·sparse", mustDenseIndicator(t), se},
		{"sparse·dense", mustIndicator(t), de},
		{"sparse·sparse", mustIndicator(t), se},
	}
	at := func(t *testing.T, m matrix.Matrix, i, j int) float64 {
		t.Helper()
		v, err := m.At(i, j)
		require.NoError(t, err)

		return v
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := nhoods.Expression(tc.x, tc.exprs)
			require.NoError(t, err)
			require.Equal(t, 2.5, at(t, res, 0, 0))
			require.Equal(t, 4.0, at(t, res, 0, 1))
			require.True(t, math.IsNaN(at(t, res, 0, 2)))
			require.True(t, math.IsInf(at(t, res, 1, 0), 1))
			require.Equal(t, 0.0, at(t, res, 1, 1))
			require.Equal(t, 10.0, at(t, res, 1, 2))
		})
	}
}

func TestCalcExpressionMatrix_TypedNil(t *testing.T) {
	var none *matrix.Dense
	_, err := nhoods.CalcExpressionMatrix(mustIndicator(t), none)
	require.ErrorIs(t, err, milo.ErrMissingExpression)

	var noX *matrix.CSC
	_, err = nhoods.CalcExpressionMatrix(noX, mustExpr(t))
	require.ErrorIs(t, err, milo.ErrNoNeighbourhoods)

	_, err = nhoods.Expression(noX, mustExpr(t))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
