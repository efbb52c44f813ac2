package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputRejectedError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InputRejectedError
		expected string
	}{
		{
			name:     "amount above ceiling",
			err:      &InputRejectedError{Field: "amount", Value: "250000", Reason: "must be in (0, 100000]"},
			expected: "input rejected: amount='250000': must be in (0, 100000]",
		},
		{
			name:     "empty value",
			err:      &InputRejectedError{Field: "amount", Value: "", Reason: "missing"},
			expected: "input rejected: amount='': missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestModelError_Unwrap(t *testing.T) {
	err := &ModelError{Model: "bayes", Err: ErrModelUnavailable}

	assert.Equal(t, "model bayes failed: model unavailable", err.Error())
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestRangeError(t *testing.T) {
	assert.Equal(t, "invalid date range: key '1500-01': year out of range",
		(&RangeError{Key: "1500-01", Reason: "year out of range"}).Error())
	assert.Equal(t, "invalid date range: no keys",
		(&RangeError{Reason: "no keys"}).Error())
}

func TestFitError_Unwrap(t *testing.T) {
	err := &FitError{Model: "arima(1,1,1)", Err: context.DeadlineExceeded}

	assert.Equal(t, "arima(1,1,1) fit failed: context deadline exceeded", err.Error())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestIsInputRejected(t *testing.T) {
	wrapped := fmt.Errorf("create expense: %w", &InputRejectedError{Field: "amount"})

	assert.True(t, IsInputRejected(wrapped))
	assert.False(t, IsInputRejected(errors.New("boom")))
	assert.False(t, IsInputRejected(nil))
}
