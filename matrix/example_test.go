package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/milo/matrix"
)

// Two neighbourhoods over four cells; the second shares cell 1 with the first.
func ExampleNewIndicator() {
	x, _ := matrix.NewIndicator(4, [][]int{{0, 1}, {1, 2, 3}}, []string{"n0", "n1"})
	sizes, _ := matrix.ColSums(x)
	fmt.Println(x.Rows(), x.Cols(), x.NNZ())
	fmt.Println(sizes)
	fmt.Println(matrix.CheckBinary(x))
	// Output:
	// 4 2 5
	// [2 3]
	// true
}

func ExampleIsZero() {
	fmt.Println(matrix.IsZero(matrix.Placeholder()))
	d, _ := matrix.NewDenseFrom(1, 2, []float64{1, -1})
	fmt.Println(matrix.IsZero(d))
	// Output:
	// true <nil>
	// true <nil>
}
