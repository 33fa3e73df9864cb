package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, 2, Max(2, 1))
	assert.Equal(t, "a", Min("b", "a"))

	t.Run("ties return the first argument", func(t *testing.T) {
		a, b := 0.0, math.Copysign(0, -1) //equal but distinguishable by their sign bit
		assert.False(t, signbit(Min(a, b)))
		assert.True(t, signbit(Min(b, a)))
		assert.False(t, signbit(Max(a, b)))
		assert.True(t, signbit(Max(b, a)))
	})
}

func signbit(f float64) bool {
	return math.Signbit(f)
}

func TestMod(t *testing.T) {
	assert.Equal(t, 1, Mod(7, 3))
	assert.Equal(t, 2, Mod(-7, 3))
	assert.Equal(t, 0, Mod(-6, 3))
	assert.Equal(t, -2, Mod(7, -3))
	assert.Equal(t, uint8(4), Mod(uint8(250), uint8(6)))

	//the % operator differs for negative dividends
	assert.Equal(t, -1, -7%3)
}

func TestAligned(t *testing.T) {
	assert.True(t, Aligned(16, 8, 0))
	assert.False(t, Aligned(12, 8, 0))
	assert.True(t, Aligned(12, 8, 4))
	assert.True(t, Aligned(0, 4, 8))
	assert.False(t, Aligned(uintptr(0x1003), 4, 0))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, int8(3), Abs(int8(3)))
}
