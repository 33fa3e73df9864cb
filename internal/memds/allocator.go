package memds

import (
	"unsafe"
)

var (
	_ Allocator = HeapAllocator{}
	_ Allocator = (*CountingAllocator)(nil)
)

// An Allocator provides and takes back element buffers.
// Alloc should return a zeroed buffer of exactly size bytes.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// HeapAllocator allocates buffers on the Go heap, Free is a no-op.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (HeapAllocator) Free(buf []byte) {}

// CountingAllocator wraps another allocator and keeps track of the buffers it handed out,
// it is used to detect leaked buffers and buffers released twice.
// It is not thread safe.
type CountingAllocator struct {
	base Allocator

	live       map[*byte]struct{}
	freed      map[*byte]struct{}
	zeroSized  int
	allocCount int
	freeCount  int

	doubleFrees  int
	foreignFrees int
}

// NewCountingAllocator returns a CountingAllocator wrapping base, if base is nil
// buffers are allocated on the heap.
func NewCountingAllocator(base Allocator) *CountingAllocator {
	if base == nil {
		base = HeapAllocator{}
	}
	return &CountingAllocator{
		base:  base,
		live:  map[*byte]struct{}{},
		freed: map[*byte]struct{}{},
	}
}

func (a *CountingAllocator) Alloc(size int) ([]byte, error) {
	buf, err := a.base.Alloc(size)
	if err != nil {
		return nil, err
	}
	a.allocCount++

	if size == 0 {
		a.zeroSized++
	} else {
		ptr := unsafe.SliceData(buf)
		a.live[ptr] = struct{}{}
		delete(a.freed, ptr)
	}
	return buf, nil
}

func (a *CountingAllocator) Free(buf []byte) {
	a.freeCount++

	if len(buf) == 0 {
		if a.zeroSized == 0 {
			a.doubleFrees++
			return
		}
		a.zeroSized--
		a.base.Free(buf)
		return
	}

	ptr := unsafe.SliceData(buf)
	if _, ok := a.live[ptr]; !ok {
		if _, ok := a.freed[ptr]; ok {
			a.doubleFrees++
		} else {
			a.foreignFrees++
		}
		return
	}
	delete(a.live, ptr)
	a.freed[ptr] = struct{}{}
	a.base.Free(buf)
}

// Outstanding returns the number of allocated buffers that have not been freed yet.
func (a *CountingAllocator) Outstanding() int {
	return len(a.live) + a.zeroSized
}

// Allocations returns the total number of successful allocations.
func (a *CountingAllocator) Allocations() int {
	return a.allocCount
}

// Frees returns the total number of calls to Free.
func (a *CountingAllocator) Frees() int {
	return a.freeCount
}

// DoubleFrees returns the number of calls to Free with an already freed buffer.
func (a *CountingAllocator) DoubleFrees() int {
	return a.doubleFrees
}

// ForeignFrees returns the number of calls to Free with a buffer it did not allocate.
func (a *CountingAllocator) ForeignFrees() int {
	return a.foreignFrees
}

// SameBuffer reports whether a and b share the same first byte, zero-length slices
// never share a buffer.
func SameBuffer(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}
