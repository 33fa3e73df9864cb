package utils

import (
	"errors"
	"fmt"
)

func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%#v", v)
}

// CombineErrors combines the non-nil errors into a single error with a multiline message,
// it returns nil if there are no such errors. The combined errors can be checked with errors.Is.
func CombineErrors(errs ...error) error {
	return errors.Join(errs...)
}

// CombineErrorsWithPrefixMessage combines errors into a single error with a multiline message.
func CombineErrorsWithPrefixMessage(prefixMsg string, errs ...error) error {
	err := CombineErrors(errs...)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefixMsg, err)
}
