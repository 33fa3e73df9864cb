package memds

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

var (
	_ graph.Directed = (*chainGraph)(nil)
	_ graph.Node     = chainNode(0)
	_ graph.Edge     = (*chainEdge)(nil)
)

// ChainGraph returns a read-only directed graph view of the list: nodes are the live node ids
// and there is an edge from every node to its successor. The view must not be used after the
// list has been modified.
func (l *LinkedList) ChainGraph() graph.Directed {
	return &chainGraph{list: l}
}

type chainGraph struct {
	list *LinkedList
}

func (g *chainGraph) Node(id int64) graph.Node {
	if !g.list.isLive(NodeId(id)) {
		return nil
	}
	return chainNode(id)
}

func (g *chainGraph) Nodes() graph.Nodes {
	ids := g.list.liveIds()
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = chainNode(id)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (g *chainGraph) From(id int64) graph.Nodes {
	return g.neighbour(NodeId(id), g.list.nextOf)
}

func (g *chainGraph) To(id int64) graph.Nodes {
	return g.neighbour(NodeId(id), g.list.prevOf)
}

func (g *chainGraph) neighbour(id NodeId, get func(NodeId) NodeId) graph.Nodes {
	if !g.list.isLive(id) {
		return iterator.NewOrderedNodes(nil)
	}
	other := get(id)
	if other == nilNode {
		return iterator.NewOrderedNodes(nil)
	}
	return iterator.NewOrderedNodes([]graph.Node{chainNode(other)})
}

func (g *chainGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

func (g *chainGraph) HasEdgeFromTo(uid, vid int64) bool {
	return g.list.isLive(NodeId(uid)) && g.list.nextOf(NodeId(uid)) == NodeId(vid)
}

func (g *chainGraph) Edge(uid, vid int64) graph.Edge {
	if !g.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return &chainEdge{from: NodeId(uid), to: NodeId(vid)}
}

type chainNode NodeId

func (n chainNode) ID() int64 {
	return int64(n)
}

type chainEdge struct {
	from, to NodeId
}

func (e *chainEdge) From() graph.Node {
	return chainNode(e.from)
}

func (e *chainEdge) To() graph.Node {
	return chainNode(e.to)
}

func (e *chainEdge) ReversedEdge() graph.Edge {
	return &chainEdge{from: e.to, to: e.from}
}
