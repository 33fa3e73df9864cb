package memds

import (
	"bytes"
)

// Contains returns true if an element of the list is byte-identical to elem.
func (l *LinkedList) Contains(elem []byte) bool {
	if len(elem) != l.elementSize {
		return false
	}

	for id := l.head; id != nilNode; id = l.nodes[id].next {
		if bytes.Equal(l.nodes[id].data, elem) {
			return true
		}
	}
	return false
}

// Any returns true if at least one element verifies pred, the elements are tested from head
// to tail until a match is found. Any returns false if the list is empty.
func (l *LinkedList) Any(pred func(elem []byte) bool) bool {
	for id := l.head; id != nilNode; id = l.nodes[id].next {
		if pred(l.nodes[id].data) {
			return true
		}
	}
	return false
}

// All returns true if every element verifies pred, the elements are tested from head to tail
// until a mismatch is found. Unlike the usual convention All returns false if the list is empty.
func (l *LinkedList) All(pred func(elem []byte) bool) bool {
	if l.head == nilNode {
		return false
	}

	for id := l.head; id != nilNode; id = l.nodes[id].next {
		if !pred(l.nodes[id].data) {
			return false
		}
	}
	return true
}

// Filter removes the elements that do not verify pred, the order of the remaining elements
// is preserved. It returns true if at least one element has been removed.
func (l *LinkedList) Filter(pred func(elem []byte) bool) bool {
	changed := false

	id := l.head
	for id != nilNode {
		next := l.nodes[id].next
		if !pred(l.nodes[id].data) {
			l.allocator.Free(l.unlink(id))
			changed = true
		}
		id = next
	}
	return changed
}

// DropWhile removes elements from the head of the list as long as they verify pred.
// It returns true if at least one element has been removed.
func (l *LinkedList) DropWhile(pred func(elem []byte) bool) bool {
	changed := false

	for l.head != nilNode && pred(l.nodes[l.head].data) {
		l.allocator.Free(l.unlink(l.head))
		changed = true
	}
	return changed
}

// TakeWhile keeps the longest prefix of elements verifying pred and removes the rest of the list.
// It returns true if at least one element has been removed.
func (l *LinkedList) TakeWhile(pred func(elem []byte) bool) bool {
	id := l.head
	for id != nilNode && pred(l.nodes[id].data) {
		id = l.nodes[id].next
	}

	if id == nilNode {
		return false
	}

	//remove from the tail to the first element that failed.
	for {
		last := l.tail
		l.allocator.Free(l.unlink(last))
		if last == id {
			break
		}
	}
	return true
}

// Map calls transform on each element from head to tail. If transform updates the element
// in place it should return Mutated(), if it returns Replaced(buf) the element's buffer is freed
// and buf takes its place.
//
// If a replacement does not have the element size Map stops and returns ErrElementSize: the
// elements before keep their new value, the current element is left unchanged and
// the replacement stays owned by the caller.
func (l *LinkedList) Map(transform func(elem []byte) Outcome) error {
	for id := l.head; id != nilNode; id = l.nodes[id].next {
		node := &l.nodes[id]

		buf, replaced := transform(node.data).resolve(node.data)
		if !replaced {
			continue
		}

		if err := l.checkSize(buf); err != nil {
			l.logger.Debug().Int("size", len(buf)).Msg("map: replacement rejected")
			return err
		}

		l.allocator.Free(node.data)
		node.data = buf
	}
	return nil
}

// Foldl folds the list from head to tail: each step calls combine(acc, elem). The accumulator
// starts as initial, which stays owned by the caller and is never freed by the list.
//
// If combine updates acc in place it should return Mutated(); if it returns Replaced(buf), buf
// becomes the accumulator and the previous accumulator is freed (unless it is initial).
// The final accumulator is owned by the caller. If the list is empty a copy of initial is returned.
func (l *LinkedList) Foldl(combine func(acc, elem []byte) Outcome, initial []byte) ([]byte, error) {
	return l.fold(initial, l.head, l.nextOf, combine)
}

// Foldr folds the list from tail to head: each step calls combine(elem, acc), the element comes first.
// The ownership rules are the same as Foldl.
func (l *LinkedList) Foldr(combine func(elem, acc []byte) Outcome, initial []byte) ([]byte, error) {
	return l.fold(initial, l.tail, l.prevOf, func(acc, elem []byte) Outcome {
		return combine(elem, acc)
	})
}

func (l *LinkedList) fold(
	initial []byte,
	start NodeId,
	advance func(NodeId) NodeId,
	step func(acc, elem []byte) Outcome,
) ([]byte, error) {
	if err := l.checkSize(initial); err != nil {
		return nil, err
	}

	if start == nilNode {
		buf, err := l.alloc()
		if err != nil {
			return nil, err
		}
		copy(buf, initial)
		return buf, nil
	}

	acc := initial
	ownedByList := false //false while acc is initial

	for id := start; id != nilNode; id = advance(id) {
		buf, replaced := step(acc, l.nodes[id].data).resolve(acc)
		if !replaced {
			continue
		}

		if err := l.checkSize(buf); err != nil {
			l.logger.Debug().Int("size", len(buf)).Msg("fold: replacement rejected")
			if ownedByList {
				l.allocator.Free(acc)
			}
			return nil, err
		}

		if ownedByList {
			l.allocator.Free(acc)
		}
		acc = buf
		ownedByList = true
	}

	return acc, nil
}

func (l *LinkedList) nextOf(id NodeId) NodeId {
	return l.nodes[id].next
}

func (l *LinkedList) prevOf(id NodeId) NodeId {
	return l.nodes[id].prev
}
