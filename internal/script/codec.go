package script

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidWidth    = errors.New("invalid element width: supported widths are 1, 2, 4 and 8")
	ErrValueOutOfRange = errors.New("value out of range")
)

var SUPPORTED_WIDTHS = []int{1, 2, 4, 8}

// intCodec converts between int64 values and signed little endian integers of a fixed width.
type intCodec struct {
	width int
}

func newIntCodec(width int) (intCodec, error) {
	switch width {
	case 1, 2, 4, 8:
		return intCodec{width: width}, nil
	}
	return intCodec{}, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
}

func (c intCodec) min() int64 {
	if c.width == 8 {
		return math.MinInt64
	}
	return -1 << (8*c.width - 1)
}

func (c intCodec) max() int64 {
	if c.width == 8 {
		return math.MaxInt64
	}
	return 1<<(8*c.width-1) - 1
}

// checkRange returns an error if v cannot be stored without wrapping.
func (c intCodec) checkRange(v int64) error {
	if v < c.min() || v > c.max() {
		return fmt.Errorf("%w: %d does not fit in %d byte(s)", ErrValueOutOfRange, v, c.width)
	}
	return nil
}

// put writes v into b, the value wraps if it does not fit.
func (c intCodec) put(b []byte, v int64) {
	switch c.width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

func (c intCodec) encode(v int64) []byte {
	b := make([]byte, c.width)
	c.put(b, v)
	return b
}

func (c intCodec) decode(b []byte) int64 {
	switch c.width {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	default:
		return int64(binary.LittleEndian.Uint64(b))
	}
}

// wrap returns v as it would be read back after being stored.
func (c intCodec) wrap(v int64) int64 {
	return c.decode(c.encode(v))
}
