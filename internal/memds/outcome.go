package memds

// An Outcome is returned by the transform and combine functions passed to Map, Foldl and Foldr.
// It tells the list whether the function updated the buffer it was given (Mutated) or
// produced a new value (Replaced).
type Outcome struct {
	replacement []byte
	replaced    bool
}

// Mutated returns the Outcome of a function that updated its buffer in place.
func Mutated() Outcome {
	return Outcome{}
}

// Replaced returns the Outcome of a function that produced a new buffer. Ownership of buf is
// transferred to the list, buf should have been allocated with (*LinkedList).NewElement when
// the list does not use the heap allocator.
func Replaced(buf []byte) Outcome {
	return Outcome{replacement: buf, replaced: true}
}

func (o Outcome) IsReplaced() bool {
	return o.replaced
}

// Replacement returns the new buffer, or nil if the outcome is Mutated.
func (o Outcome) Replacement() []byte {
	return o.replacement
}

// resolve returns the buffer that should be kept in place of current. A replacement
// aliasing current counts as an in-place update.
func (o Outcome) resolve(current []byte) (buf []byte, replaced bool) {
	if !o.replaced || SameBuffer(o.replacement, current) {
		return current, false
	}
	return o.replacement, true
}
