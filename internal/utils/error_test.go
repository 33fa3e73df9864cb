package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineErrors(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		assert.NoError(t, CombineErrors())
		assert.NoError(t, CombineErrors(nil, nil))
	})

	t.Run("nil errors are ignored", func(t *testing.T) {
		err := CombineErrors(errors.New("a"), nil, errors.New("b"))
		assert.EqualError(t, err, "a\nb")
	})

	t.Run("with prefix", func(t *testing.T) {
		err := CombineErrorsWithPrefixMessage("invalid script", errors.New("a"), errors.New("b"))
		assert.EqualError(t, err, "invalid script: a\nb")

		assert.NoError(t, CombineErrorsWithPrefixMessage("invalid script"))
	})
}

func TestConvertPanicValueToError(t *testing.T) {
	err := errors.New("x")
	assert.Same(t, err, ConvertPanicValueToError(err))
	assert.EqualError(t, ConvertPanicValueToError("x"), `"x"`)
}

func TestCombineErrorsUnwrap(t *testing.T) {
	errA := errors.New("a")
	err := CombineErrorsWithPrefixMessage("prefix", errA, errors.New("b"))

	assert.ErrorIs(t, err, errA)
}
