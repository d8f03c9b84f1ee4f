package core_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milo/core"
)

func cyclic(n int) [][]int {
	nn := make([][]int, n)
	for i := range nn {
		nn[i] = []int{(i + 1) % n}
	}

	return nn
}

// A ring of single neighbours collapses to exactly N undirected edges.
func TestFromKNN_CyclicUndirected(t *testing.T) {
	for _, n := range []int{3, 4, 10, 57} {
		g, err := core.FromKNN(cyclic(n), false)
		require.NoError(t, err)
		require.Equal(t, n, g.VertexCount())
		require.Equal(t, n, g.EdgeCount(), "n=%d", n)
		require.False(t, g.Directed())
	}
}

// Mutual neighbours: every pair appears twice in the raw list.
func TestFromKNN_CollapsesMirrors(t *testing.T) {
	nn := [][]int{{1, 2}, {0, 2}, {0, 1}}
	g, err := core.FromKNN(nn, false)
	require.NoError(t, err)
	require.Equal(t, 3, g.EdgeCount())
	for _, e := range g.Edges() {
		require.NotEqual(t, e.From, e.To)
	}
	// first-seen orientation survives
	edges := g.Edges()
	require.Equal(t, [2]string{"0", "1"}, [2]string{edges[0].From, edges[0].To})
	require.Equal(t, [2]string{"0", "2"}, [2]string{edges[1].From, edges[1].To})
	require.Equal(t, [2]string{"1", "2"}, [2]string{edges[2].From, edges[2].To})
	require.Equal(t, "e1", edges[0].ID)
	require.Equal(t, "e3", edges[2].ID)
}

func TestFromKNN_DirectedKeepsMultigraph(t *testing.T) {
	nn := [][]int{{1, 1, 0}, {0}, {}}
	g, err := core.FromKNN(nn, true)
	require.NoError(t, err)
	require.True(t, g.Directed())
	require.Equal(t, 3, g.VertexCount())
	require.Equal(t, 4, g.EdgeCount()) // 0→1 twice, 0→0, 1→0
	require.True(t, g.HasEdge("1", "0"))
	require.True(t, g.HasEdge("0", "0"))

	deg, err := g.Degree("2")
	require.NoError(t, err)
	require.Zero(t, deg)
}

func TestFromKNN_DropsLoopsUndirected(t *testing.T) {
	g, err := core.FromKNN([][]int{{0, 1}, {1}}, false)
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())
	require.False(t, g.HasEdge("0", "0"))
}

func TestFromKNN_IsolatedVertices(t *testing.T) {
	g, err := core.FromKNN([][]int{{1}, {0}, {}, {}}, false)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2", "3"}, g.Vertices())
	require.Equal(t, 1, g.EdgeCount())
}

func TestFromKNN_Names(t *testing.T) {
	names := []string{"AAAC", "AAAG", "AAAT"}
	g, err := core.FromKNN(cyclic(3), false, core.WithVertexNames(names))
	require.NoError(t, err)
	require.Equal(t, names, g.Vertices())
	require.True(t, g.HasEdge("AAAT", "AAAC"))

	_, err = core.FromKNN(cyclic(3), false, core.WithVertexNames(names[:2]))
	require.ErrorIs(t, err, core.ErrBadVertexNames)

	_, err = core.FromKNN(cyclic(3), false, core.WithVertexNames([]string{"a", "a", "b"}))
	require.ErrorIs(t, err, core.ErrBadVertexNames)

	_, err = core.FromKNN(cyclic(3), false, core.WithVertexNames([]string{"a", "", "b"}))
	require.ErrorIs(t, err, core.ErrEmptyVertexID)
}

func TestFromKNN_OutOfRange(t *testing.T) {
	for _, bad := range []int{-1, 3} {
		_, err := core.FromKNN([][]int{{1}, {bad}, {0}}, false)
		require.ErrorIs(t, err, core.ErrNeighbourOutOfRange)
	}
}

func TestFromKNN_Empty(t *testing.T) {
	g, err := core.FromKNN(nil, false)
	require.NoError(t, err)
	require.Zero(t, g.VertexCount())
}

func BenchmarkFromKNN(b *testing.B) {
	const n, k = 2000, 15
	nn := make([][]int, n)
	for i := range nn {
		for j := 1; j <= k; j++ {
			nn[i] = append(nn[i], (i+j*j)%n)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := core.FromKNN(nn, false); err != nil {
			b.Fatal(strconv.Itoa(i) + ": " + err.Error())
		}
	}
}
