package memds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

func TestLinkedListCheck(t *testing.T) {
	t.Run("valid lists", func(t *testing.T) {
		empty, _ := newTestList(t, 1)
		assert.NoError(t, empty.Check())

		single, _ := newByteList(t, 1)
		assert.NoError(t, single.Check())

		multiple, _ := newByteList(t, 1, 2, 3)
		assert.True(t, multiple.Delete(1))
		assert.NoError(t, multiple.Check())
	})

	t.Run("tail without head", func(t *testing.T) {
		list, _ := newByteList(t, 1)
		list.head = nilNode

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("wrong length", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2)
		list.length = 3

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("cycle", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2, 3)
		list.nodes[list.tail].next = list.head

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("broken previous link", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2, 3)
		second := list.nodes[list.head].next
		list.nodes[second].prev = nilNode

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("tail not at the end of the chain", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2, 3)
		list.tail = list.nodes[list.tail].prev

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("buffer of the wrong size", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2)
		list.nodes[list.head].data = []byte{1, 1}

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})

	t.Run("dead node in the chain", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2, 3)
		list.live.Clear(uint(list.head))
		list.live.Set(uint(len(list.nodes) + 5))

		assert.ErrorIs(t, list.Check(), ErrBrokenChain)
	})
}

func TestChainGraph(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list, _ := newTestList(t, 1)
		g := list.ChainGraph()

		assert.Zero(t, g.Nodes().Len())
		assert.Nil(t, g.Node(0))
	})

	t.Run("multiple", func(t *testing.T) {
		list, _ := newByteList(t, 1, 2, 3, 4)
		//ids: 0, 1, 2, 3 -> after deleting index 1 and pushing 5 at the head: 1, 0, 2, 3
		assert.True(t, list.Delete(1))
		assert.NoError(t, list.PushHead([]byte{5}))

		g := list.ChainGraph()
		assert.Equal(t, 4, g.Nodes().Len())
		assert.Equal(t, []graph.Node{chainNode(0), chainNode(1), chainNode(2), chainNode(3)}, graph.NodesOf(g.Nodes()))

		assert.True(t, g.HasEdgeFromTo(1, 0))
		assert.False(t, g.HasEdgeFromTo(0, 1))
		assert.True(t, g.HasEdgeBetween(0, 1))
		assert.False(t, g.HasEdgeBetween(1, 2))

		assert.Equal(t, []graph.Node{chainNode(2)}, graph.NodesOf(g.From(0)))
		assert.Equal(t, []graph.Node{chainNode(1)}, graph.NodesOf(g.To(0)))
		assert.Empty(t, graph.NodesOf(g.From(3)))
		assert.Empty(t, graph.NodesOf(g.To(1)))
		assert.Empty(t, graph.NodesOf(g.From(42)))

		edge := g.Edge(2, 3)
		if assert.NotNil(t, edge) {
			assert.EqualValues(t, 2, edge.From().ID())
			assert.EqualValues(t, 3, edge.To().ID())
			assert.EqualValues(t, 3, edge.ReversedEdge().From().ID())
		}
		assert.Nil(t, g.Edge(3, 2))

		sorted, err := topo.Sort(g)
		assert.NoError(t, err)
		assert.Equal(t, []graph.Node{chainNode(1), chainNode(0), chainNode(2), chainNode(3)}, sorted)
	})
}
