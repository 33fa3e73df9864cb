package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("all step forms", func(t *testing.T) {
		script, err := Parse([]byte(`
width: 2
steps:
  - push_tail: [1, -2, 3]
  - push_head: 4
  - pop_head
  - pop_tail:
  - insert: {value: 5, index: 1}
  - delete: 0
  - remove: 1
  - fetch: 0
  - contains: -2
  - any: {op: gte, arg: 1}
  - filter: {op: even}
  - map: {op: mul, arg: 3, alloc: true}
  - foldr: {fn: sub, initial: 7}
  - expect: [3]
  - release
`), 1)

		require.NoError(t, err)
		assert.Equal(t, 2, script.Width)

		expectedSteps := []Step{
			{Op: PUSH_TAIL, Values: []int64{1, -2, 3}},
			{Op: PUSH_HEAD, Values: []int64{4}},
			{Op: POP_HEAD},
			{Op: POP_TAIL},
			{Op: INSERT, Value: 5, Index: 1},
			{Op: DELETE, Index: 0},
			{Op: REMOVE, Index: 1},
			{Op: FETCH, Index: 0},
			{Op: CONTAINS, Value: -2},
			{Op: ANY, Predicate: &PredicateSpec{Op: "gte", Arg: 1}},
			{Op: FILTER, Predicate: &PredicateSpec{Op: "even"}},
			{Op: MAP, Transform: &TransformSpec{Op: "mul", Arg: 3, Alloc: true}},
			{Op: FOLDR, Fold: &FoldSpec{Fn: "sub", Initial: 7}},
			{Op: EXPECT, Values: []int64{3}},
			{Op: RELEASE},
		}
		assert.Equal(t, expectedSteps, script.Steps)
	})

	t.Run("default width", func(t *testing.T) {
		script, err := Parse([]byte("steps: [pop_head]"), 4)
		require.NoError(t, err)
		assert.Equal(t, 4, script.Width)
	})

	t.Run("invalid width", func(t *testing.T) {
		_, err := Parse([]byte("width: 3\nsteps: []"), 1)
		assert.ErrorIs(t, err, ErrInvalidWidth)
	})

	t.Run("unknown top-level key", func(t *testing.T) {
		_, err := Parse([]byte("width: 1\nstep: []"), 1)
		assert.Error(t, err)
	})

	t.Run("step with several keys", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - {push_tail: [1], pop_head: null}"), 1)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("unknown argument", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - insert: {value: 1, idx: 0}"), 1)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - push_tale: [1]"), 1)
		if assert.ErrorIs(t, err, ErrInvalidStep) {
			assert.ErrorContains(t, err, "did you mean 'push_tail' ?")
		}

		_, err = Parse([]byte("steps:\n  - shuffle"), 1)
		if assert.ErrorIs(t, err, ErrInvalidStep) {
			assert.NotContains(t, err.Error(), "did you mean")
		}
	})

	t.Run("unknown operators", func(t *testing.T) {
		_, err := Parse([]byte(`
steps:
  - any: {op: between}
  - map: {op: div, arg: 2}
  - foldl: {fn: xor}
`), 1)

		assert.ErrorIs(t, err, ErrUnknownOperator)
		assert.ErrorContains(t, err, "step 1")
		assert.ErrorContains(t, err, "step 2")
		assert.ErrorContains(t, err, "step 3")
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := Parse([]byte("steps: [filter, map, foldl]"), 1)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("values out of range", func(t *testing.T) {
		_, err := Parse([]byte("width: 1\nsteps:\n  - push_tail: [1, 200]"), 1)
		assert.ErrorIs(t, err, ErrValueOutOfRange)

		_, err = Parse([]byte("width: 2\nsteps:\n  - push_tail: [1, 200]"), 1)
		assert.NoError(t, err)

		_, err = Parse([]byte("width: 1\nsteps:\n  - foldl: {fn: add, initial: -129}"), 1)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [pop_head]"), 0o600))

	script, err := ParseFile(path, 1)
	require.NoError(t, err)
	assert.Len(t, script.Steps, 1)

	invalidPath := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidPath, []byte("steps: [peek]"), 0o600))

	_, err = ParseFile(invalidPath, 1)
	assert.ErrorContains(t, err, invalidPath)

	_, err = ParseFile(filepath.Join(dir, "missing.yaml"), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
