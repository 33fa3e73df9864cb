package memds

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

var (
	ErrNegativeElementSize = errors.New("negative element size")
	ErrElementSize         = errors.New("buffer length is not equal to the element size of the list")
	ErrInvalidIndex        = errors.New("invalid index")
	ErrAllocationFailure   = errors.New("allocation failure")
	ErrBrokenChain         = errors.New("broken chain")
)

// LinkedList is a thread unsafe doubly linked list of fixed-size byte elements.
// Elements are copied in on insertion, every node owns its buffer.
// Nodes live in an arena and are linked by NodeId handles.
type LinkedList struct {
	head, tail  NodeId
	length      int
	elementSize int

	nodes        []listNode
	live         *bitset.BitSet
	availableIds []NodeId

	allocator Allocator
	logger    zerolog.Logger
}

type LinkedListConfig struct {
	ElementSize int

	//defaults to HeapAllocator.
	Allocator Allocator

	//defaults to a disabled logger.
	Logger *zerolog.Logger

	//number of node slots allocated upfront.
	InitialCapacity int
}

// NewLinkedList returns an empty list of elements of elementSize bytes.
func NewLinkedList(elementSize int) (*LinkedList, error) {
	return NewLinkedListWithConfig(LinkedListConfig{ElementSize: elementSize})
}

func NewLinkedListWithConfig(config LinkedListConfig) (*LinkedList, error) {
	if config.ElementSize < 0 {
		return nil, ErrNegativeElementSize
	}

	capacity := max(config.InitialCapacity, 0)

	list := &LinkedList{
		head:        nilNode,
		tail:        nilNode,
		elementSize: config.ElementSize,
		nodes:       make([]listNode, 0, capacity),
		live:        bitset.New(uint(capacity)),
		allocator:   config.Allocator,
		logger:      zerolog.Nop(),
	}

	if list.allocator == nil {
		list.allocator = HeapAllocator{}
	}

	if config.Logger != nil {
		list.logger = *config.Logger
	}

	return list, nil
}

// ElementSize returns the size in bytes of the list's elements.
func (l *LinkedList) ElementSize() int {
	return l.elementSize
}

// Len returns the number of elements in the list.
func (l *LinkedList) Len() int {
	return l.length
}

// IsEmpty returns true if the list does not contain any elements.
func (l *LinkedList) IsEmpty() bool {
	return l.head == nilNode
}

// NewElement allocates a zeroed buffer of the list's element size with the list's allocator.
// It is intended for replacement values returned by Map and fold functions.
func (l *LinkedList) NewElement() ([]byte, error) {
	return l.alloc()
}

// FreeElement gives back to the list's allocator a buffer the caller owns (popped, removed,
// fetched or returned by a fold). buf must not be used afterwards.
func (l *LinkedList) FreeElement(buf []byte) {
	if buf == nil {
		return
	}
	l.allocator.Free(buf)
}

// PushHead inserts a copy of elem at the head of the list.
func (l *LinkedList) PushHead(elem []byte) error {
	buf, err := l.copyIn(elem)
	if err != nil {
		return err
	}
	l.linkHead(l.newNode(buf))
	return nil
}

// PushTail inserts a copy of elem at the tail of the list.
func (l *LinkedList) PushTail(elem []byte) error {
	buf, err := l.copyIn(elem)
	if err != nil {
		return err
	}
	l.linkTail(l.newNode(buf))
	return nil
}

// PopHead removes the first element and returns it, the caller owns the returned buffer.
// The second result is false if the list is empty.
func (l *LinkedList) PopHead() ([]byte, bool) {
	if l.head == nilNode {
		return nil, false
	}
	return l.unlink(l.head), true
}

// PopTail removes the last element and returns it, the caller owns the returned buffer.
// The second result is false if the list is empty.
func (l *LinkedList) PopTail() ([]byte, bool) {
	if l.tail == nilNode {
		return nil, false
	}
	return l.unlink(l.tail), true
}

// Head returns a copy of the first element.
func (l *LinkedList) Head() ([]byte, bool) {
	if l.head == nilNode {
		return nil, false
	}
	return l.copyOut(l.head)
}

// Tail returns a copy of the last element.
func (l *LinkedList) Tail() ([]byte, bool) {
	if l.tail == nilNode {
		return nil, false
	}
	return l.copyOut(l.tail)
}

// Fetch returns a copy of the element at index, the list is not modified.
// The second result is false if index is out of bounds or if the copy could not be allocated.
func (l *LinkedList) Fetch(index int) ([]byte, bool) {
	if !l.isElementIndex(index) {
		return nil, false
	}
	return l.copyOut(l.nodeAt(index))
}

// Insert inserts a copy of elem so that it is at position index afterwards.
// Any index in [0, Len()] is valid: 0 prepends, Len() appends.
func (l *LinkedList) Insert(elem []byte, index int) error {
	if index < 0 || index > l.length {
		return ErrInvalidIndex
	}

	buf, err := l.copyIn(elem)
	if err != nil {
		return err
	}
	id := l.newNode(buf)

	switch index {
	case 0:
		l.linkHead(id)
	case l.length:
		l.linkTail(id)
	default:
		l.linkBefore(l.nodeAt(index), id)
	}
	return nil
}

// Delete removes the element at index and frees its buffer.
// It returns false if index is out of bounds.
func (l *LinkedList) Delete(index int) bool {
	if !l.isElementIndex(index) {
		return false
	}
	l.allocator.Free(l.unlink(l.nodeAt(index)))
	return true
}

// Remove removes the element at index and returns it, the caller owns the returned buffer.
// The second result is false if index is out of bounds.
func (l *LinkedList) Remove(index int) ([]byte, bool) {
	if !l.isElementIndex(index) {
		return nil, false
	}
	return l.unlink(l.nodeAt(index)), true
}

// Values returns a copy of all elements (head to tail).
func (l *LinkedList) Values() ([][]byte, error) {
	values := make([][]byte, 0, l.length)

	for id := l.head; id != nilNode; id = l.nodes[id].next {
		buf, ok := l.copyOut(id)
		if !ok {
			for _, v := range values {
				l.allocator.Free(v)
			}
			return nil, ErrAllocationFailure
		}
		values = append(values, buf)
	}
	return values, nil
}

// ForEachElem calls fn for each element (head to tail) and stops at the first error.
// fn should neither retain nor modify elem.
func (l *LinkedList) ForEachElem(fn func(i int, elem []byte) error) error {
	i := 0
	for id := l.head; id != nilNode; id = l.nodes[id].next {
		if err := fn(i, l.nodes[id].data); err != nil {
			return err
		}
		i++
	}
	return nil
}

// Release frees all the elements and nodes, the list is empty afterwards and can be reused.
func (l *LinkedList) Release() {
	for id := l.head; id != nilNode; id = l.nodes[id].next {
		l.allocator.Free(l.nodes[id].data)
	}

	l.nodes = l.nodes[:0]
	l.availableIds = l.availableIds[:0]
	l.live.ClearAll()
	l.head = nilNode
	l.tail = nilNode
	l.length = 0
}

func (l *LinkedList) isElementIndex(index int) bool {
	return index >= 0 && index < l.length
}

// nodeAt walks from the closest end of the list, index should be valid.
func (l *LinkedList) nodeAt(index int) NodeId {
	if index < l.length/2 {
		id := l.head
		for ; index > 0; index-- {
			id = l.nodes[id].next
		}
		return id
	}

	id := l.tail
	for i := l.length - 1; i > index; i-- {
		id = l.nodes[id].prev
	}
	return id
}

func (l *LinkedList) alloc() ([]byte, error) {
	buf, err := l.allocator.Alloc(l.elementSize)
	if err != nil || len(buf) != l.elementSize {
		l.logger.Debug().Err(err).Int("size", l.elementSize).Msg("failed to allocate element")
		return nil, ErrAllocationFailure
	}
	return buf, nil
}

func (l *LinkedList) checkSize(buf []byte) error {
	if len(buf) != l.elementSize {
		return ErrElementSize
	}
	return nil
}

func (l *LinkedList) copyIn(elem []byte) ([]byte, error) {
	if err := l.checkSize(elem); err != nil {
		return nil, err
	}
	buf, err := l.alloc()
	if err != nil {
		return nil, err
	}
	copy(buf, elem)
	return buf, nil
}

func (l *LinkedList) copyOut(id NodeId) ([]byte, bool) {
	buf, err := l.alloc()
	if err != nil {
		return nil, false
	}
	copy(buf, l.nodes[id].data)
	return buf, true
}

func (l *LinkedList) newNode(data []byte) NodeId {
	node := listNode{prev: nilNode, next: nilNode, data: data}

	var id NodeId
	if len(l.availableIds) == 0 {
		id = NodeId(len(l.nodes))
		l.nodes = append(l.nodes, node)
	} else {
		last := len(l.availableIds) - 1
		id = l.availableIds[last]
		l.availableIds = l.availableIds[:last]
		l.nodes[id] = node
	}

	l.live.Set(uint(id))
	return id
}

func (l *LinkedList) freeNode(id NodeId) {
	l.nodes[id] = listNode{prev: nilNode, next: nilNode}
	l.live.Clear(uint(id))
	l.availableIds = append(l.availableIds, id)

	//shrink the arena when it is empty
	if len(l.availableIds) == len(l.nodes) {
		l.nodes = l.nodes[:0]
		l.availableIds = l.availableIds[:0]
	}
}

func (l *LinkedList) linkHead(id NodeId) {
	node := &l.nodes[id]
	node.prev = nilNode
	node.next = l.head

	if l.head == nilNode {
		l.tail = id
	} else {
		l.nodes[l.head].prev = id
	}
	l.head = id
	l.length++
}

func (l *LinkedList) linkTail(id NodeId) {
	node := &l.nodes[id]
	node.next = nilNode
	node.prev = l.tail

	if l.tail == nilNode {
		l.head = id
	} else {
		l.nodes[l.tail].next = id
	}
	l.tail = id
	l.length++
}

// linkBefore links id before mark, mark should not be the head.
func (l *LinkedList) linkBefore(mark, id NodeId) {
	prev := l.nodes[mark].prev

	node := &l.nodes[id]
	node.prev = prev
	node.next = mark

	l.nodes[prev].next = id
	l.nodes[mark].prev = id
	l.length++
}

// unlink detaches the node, frees its slot and returns its buffer.
func (l *LinkedList) unlink(id NodeId) []byte {
	node := l.nodes[id]

	if node.prev == nilNode {
		l.head = node.next
	} else {
		l.nodes[node.prev].next = node.next
	}

	if node.next == nilNode {
		l.tail = node.prev
	} else {
		l.nodes[node.next].prev = node.prev
	}

	l.length--
	l.freeNode(id)
	return node.data
}

// liveIds returns the ids of live nodes in arena order.
func (l *LinkedList) liveIds() []NodeId {
	ids := make([]NodeId, 0, l.length)
	for i, ok := l.live.NextSet(0); ok; i, ok = l.live.NextSet(i + 1) {
		ids = append(ids, NodeId(i))
	}
	return ids
}

func (l *LinkedList) isLive(id NodeId) bool {
	return id >= 0 && int(id) < len(l.nodes) && l.live.Test(uint(id))
}
