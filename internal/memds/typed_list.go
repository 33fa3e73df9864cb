package memds

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	ErrUnsupportedElementType = errors.New("unsupported element type: only fixed-size types are supported")
)

// TypedList is a LinkedList of fixed-size values (booleans, sized numbers, arrays and structs of those).
// Values are stored in little endian order.
type TypedList[T any] struct {
	list *LinkedList
}

func NewTypedList[T any]() (*TypedList[T], error) {
	return NewTypedListWithConfig[T](LinkedListConfig{})
}

// NewTypedListWithConfig creates a TypedList, config.ElementSize is ignored.
func NewTypedListWithConfig[T any](config LinkedListConfig) (*TypedList[T], error) {
	var zero T
	size := binary.Size(zero)
	if size < 0 {
		return nil, ErrUnsupportedElementType
	}

	config.ElementSize = size
	list, err := NewLinkedListWithConfig(config)
	if err != nil {
		return nil, err
	}
	return &TypedList[T]{list: list}, nil
}

// Bytes returns the underlying list.
func (l *TypedList[T]) Bytes() *LinkedList {
	return l.list
}

func (l *TypedList[T]) Len() int {
	return l.list.Len()
}

func (l *TypedList[T]) IsEmpty() bool {
	return l.list.IsEmpty()
}

func (l *TypedList[T]) PushHead(v T) error {
	return l.withEncoded(v, l.list.PushHead)
}

func (l *TypedList[T]) PushTail(v T) error {
	return l.withEncoded(v, l.list.PushTail)
}

func (l *TypedList[T]) Insert(v T, index int) error {
	return l.withEncoded(v, func(b []byte) error {
		return l.list.Insert(b, index)
	})
}

func (l *TypedList[T]) PopHead() (T, bool) {
	return l.take(l.list.PopHead())
}

func (l *TypedList[T]) PopTail() (T, bool) {
	return l.take(l.list.PopTail())
}

func (l *TypedList[T]) Fetch(index int) (T, bool) {
	return l.take(l.list.Fetch(index))
}

func (l *TypedList[T]) Remove(index int) (T, bool) {
	return l.take(l.list.Remove(index))
}

func (l *TypedList[T]) Delete(index int) bool {
	return l.list.Delete(index)
}

func (l *TypedList[T]) Contains(v T) bool {
	encoded, err := encodeValue(v)
	if err != nil {
		return false
	}
	return l.list.Contains(encoded)
}

func (l *TypedList[T]) Any(pred func(v T) bool) bool {
	return l.list.Any(l.decodingPredicate(pred))
}

func (l *TypedList[T]) All(pred func(v T) bool) bool {
	return l.list.All(l.decodingPredicate(pred))
}

func (l *TypedList[T]) Filter(pred func(v T) bool) bool {
	return l.list.Filter(l.decodingPredicate(pred))
}

func (l *TypedList[T]) DropWhile(pred func(v T) bool) bool {
	return l.list.DropWhile(l.decodingPredicate(pred))
}

func (l *TypedList[T]) TakeWhile(pred func(v T) bool) bool {
	return l.list.TakeWhile(l.decodingPredicate(pred))
}

// Map replaces each value v with fn(v), values are updated in place.
func (l *TypedList[T]) Map(fn func(v T) T) error {
	var firstErr error

	err := l.list.Map(func(elem []byte) Outcome {
		if firstErr != nil {
			return Mutated()
		}
		v, err := decodeValue[T](elem)
		if err == nil {
			err = encodeValueInto(elem, fn(v))
		}
		firstErr = err
		return Mutated()
	})

	if err != nil {
		return err
	}
	return firstErr
}

// Foldl folds the list from head to tail with fn(acc, v).
func (l *TypedList[T]) Foldl(fn func(acc, v T) T, initial T) (T, error) {
	var stepErr error
	combine := func(acc, elem []byte) Outcome {
		if stepErr == nil {
			stepErr = foldStep(acc, elem, fn)
		}
		return Mutated()
	}

	return l.fold(initial, &stepErr, func(initialBuf []byte) ([]byte, error) {
		return l.list.Foldl(combine, initialBuf)
	})
}

// Foldr folds the list from tail to head with fn(v, acc).
func (l *TypedList[T]) Foldr(fn func(v, acc T) T, initial T) (T, error) {
	var stepErr error
	combine := func(elem, acc []byte) Outcome {
		if stepErr == nil {
			stepErr = foldStep(acc, elem, func(a, v T) T { return fn(v, a) })
		}
		return Mutated()
	}

	return l.fold(initial, &stepErr, func(initialBuf []byte) ([]byte, error) {
		return l.list.Foldr(combine, initialBuf)
	})
}

// Values returns all values (head to tail).
func (l *TypedList[T]) Values() ([]T, error) {
	values := make([]T, 0, l.list.Len())

	err := l.list.ForEachElem(func(i int, elem []byte) error {
		v, err := decodeValue[T](elem)
		if err != nil {
			return err
		}
		values = append(values, v)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return values, nil
}

func (l *TypedList[T]) Release() {
	l.list.Release()
}

func (l *TypedList[T]) withEncoded(v T, fn func([]byte) error) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return err
	}
	return fn(encoded)
}

// take decodes a buffer owned by the caller and gives it back to the allocator.
func (l *TypedList[T]) take(buf []byte, ok bool) (v T, _ bool) {
	if !ok {
		return
	}
	defer l.list.FreeElement(buf)

	v, err := decodeValue[T](buf)
	if err != nil {
		return v, false
	}
	return v, true
}

func (l *TypedList[T]) decodingPredicate(pred func(v T) bool) func([]byte) bool {
	return func(elem []byte) bool {
		v, err := decodeValue[T](elem)
		if err != nil {
			return false
		}
		return pred(v)
	}
}

// fold runs a fold whose combine function always updates the accumulator in place,
// so the result is initialBuf unless the list is empty.
func (l *TypedList[T]) fold(initial T, stepErr *error, run func(initialBuf []byte) ([]byte, error)) (v T, _ error) {
	initialBuf, err := encodeValue(initial)
	if err != nil {
		return v, err
	}

	copied := l.list.IsEmpty()

	out, err := run(initialBuf)
	if err != nil {
		return v, err
	}
	if copied {
		defer l.list.FreeElement(out)
	}

	if *stepErr != nil {
		return v, *stepErr
	}
	return decodeValue[T](out)
}

// foldStep stores fn(acc, v) in acc.
func foldStep[T any](acc, elem []byte, fn func(acc, v T) T) error {
	a, err := decodeValue[T](acc)
	if err != nil {
		return err
	}
	v, err := decodeValue[T](elem)
	if err != nil {
		return err
	}
	return encodeValueInto(acc, fn(a, v))
}

func encodeValue[T any](v T) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, binary.Size(v)))
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValueInto[T any](dst []byte, v T) error {
	encoded, err := encodeValue(v)
	if err != nil {
		return err
	}
	if len(encoded) != len(dst) {
		return ErrElementSize
	}
	copy(dst, encoded)
	return nil
}

func decodeValue[T any](b []byte) (v T, err error) {
	err = binary.Read(bytes.NewReader(b), binary.LittleEndian, &v)
	return
}
