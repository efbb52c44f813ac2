// Package apperror defines the error taxonomy of the analytics core. Every failure
// mode degrades to a fallback or to one of these inspectable values; none is fatal.
package apperror

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned by null-object models standing in for an
// optional classifier or entity-recognition model that was not loaded.
var ErrModelUnavailable = errors.New("model unavailable")

// InputRejectedError represents input that cannot become a record, such as an
// amount outside the accepted range. No partial record is produced.
type InputRejectedError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputRejectedError) Error() string {
	return fmt.Sprintf("input rejected: %s='%s': %s", e.Field, e.Value, e.Reason)
}

// ModelError wraps a failure raised by an optional model. It is always caught
// where the model is used; the caller then applies its deterministic fallback.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// RangeError reports a date or series key outside sane bounds.
type RangeError struct {
	Key    string
	Reason string
}

func (e *RangeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid date range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid date range: key '%s': %s", e.Key, e.Reason)
}

// FitError represents a forecasting model that could not be fitted or
// produced unusable output.
type FitError struct {
	Model string
	Err   error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s fit failed: %v", e.Model, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// IsInputRejected reports whether err is, or wraps, an InputRejectedError.
func IsInputRejected(err error) bool {
	var target *InputRejectedError
	return errors.As(err, &target)
}
