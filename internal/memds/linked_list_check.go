package memds

import (
	"fmt"

	"gonum.org/v1/gonum/graph/topo"
)

// Check verifies the structural invariants of the list and returns an error wrapping
// ErrBrokenChain describing the first violation found.
func (l *LinkedList) Check() error {
	if (l.head == nilNode) != (l.tail == nilNode) {
		return fmt.Errorf("%w: head is %d but tail is %d", ErrBrokenChain, l.head, l.tail)
	}

	if (l.head == nilNode) != (l.length == 0) {
		return fmt.Errorf("%w: head is %d but length is %d", ErrBrokenChain, l.head, l.length)
	}

	if liveCount := int(l.live.Count()); liveCount != l.length {
		return fmt.Errorf("%w: %d live nodes but length is %d", ErrBrokenChain, liveCount, l.length)
	}

	if used := len(l.nodes) - len(l.availableIds); used != l.length {
		return fmt.Errorf("%w: %d used node slots but length is %d", ErrBrokenChain, used, l.length)
	}

	//forward walk

	forward := make([]NodeId, 0, l.length)
	prev := nilNode

	for id := l.head; id != nilNode; id = l.nodes[id].next {
		if len(forward) == l.length {
			return fmt.Errorf("%w: more than %d nodes reachable from the head", ErrBrokenChain, l.length)
		}
		if !l.isLive(id) {
			return fmt.Errorf("%w: node %d is reachable but not live", ErrBrokenChain, id)
		}

		node := l.nodes[id]
		if node.prev != prev {
			return fmt.Errorf("%w: node %d has %d as previous node instead of %d", ErrBrokenChain, id, node.prev, prev)
		}
		if len(node.data) != l.elementSize {
			return fmt.Errorf("%w: node %d holds %d bytes instead of %d", ErrBrokenChain, id, len(node.data), l.elementSize)
		}

		forward = append(forward, id)
		prev = id
	}

	if len(forward) != l.length {
		return fmt.Errorf("%w: %d nodes reachable from the head but length is %d", ErrBrokenChain, len(forward), l.length)
	}

	if prev != l.tail {
		return fmt.Errorf("%w: forward walk ends at %d instead of the tail %d", ErrBrokenChain, prev, l.tail)
	}

	//backward walk

	i := len(forward) - 1
	for id := l.tail; id != nilNode; id = l.nodes[id].prev {
		if i < 0 || forward[i] != id {
			return fmt.Errorf("%w: backward walk does not match forward walk at node %d", ErrBrokenChain, id)
		}
		i--
	}

	//the chain graph should be a single path ordered from head to tail.

	sorted, err := topo.Sort(l.ChainGraph())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrokenChain, err)
	}

	if len(sorted) != len(forward) {
		return fmt.Errorf("%w: chain graph has %d nodes instead of %d", ErrBrokenChain, len(sorted), len(forward))
	}

	for i, node := range sorted {
		if NodeId(node.ID()) != forward[i] {
			return fmt.Errorf("%w: node %d is at position %d in the chain graph", ErrBrokenChain, node.ID(), i)
		}
	}

	return nil
}
