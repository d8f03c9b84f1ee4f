package nhoods_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/nhoods"
)

// Five cells in three overlapping neighbourhoods.
func ExampleAdjacency() {
	x, _ := matrix.NewIndicator(5, [][]int{{0, 1, 2}, {2, 3}, {3, 4}}, []string{"a", "b", "c"})
	adj, _ := nhoods.Adjacency(x, 1)
	for i := 0; i < adj.Rows(); i++ {
		fmt.Println(adj.RowNames()[i], mat.Row(nil, i, adj.Raw()))
	}
	// Output:
	// a [3 1 0]
	// b [1 2 1]
	// c [0 1 2]
}

func ExampleExpression() {
	x, _ := matrix.NewIndicator(5, [][]int{{0, 1, 2}, {2, 3}, {3, 4}}, []string{"a", "b", "c"})
	exprs, _ := matrix.NewDenseFrom(1, 5, []float64{1, 2, 3, 4, 5})
	means, _ := nhoods.Expression(x, exprs)
	for j, name := range means.ColNames() {
		v, _ := means.At(0, j)
		fmt.Println(name, v)
	}
	// Output:
	// a 2
	// b 3.5
	// c 4.5
}
