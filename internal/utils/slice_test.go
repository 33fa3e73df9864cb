package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, MapSlice(nil, strconv.Itoa))
}

func TestEmptySliceIfNil(t *testing.T) {
	assert.NotNil(t, EmptySliceIfNil[int](nil))
	assert.Equal(t, []int{1}, EmptySliceIfNil([]int{1}))
}
