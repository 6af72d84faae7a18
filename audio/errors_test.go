// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: ErrInvalidDstSize, want: "dst size must be multiple of channels"},
		{err: ErrInvalidRate, want: "sample rate must be positive"},
		{err: ErrEmptyBuffer, want: "buffer has no channels"},
		{err: ErrInvalidBitDepth, want: "unsupported bit depth"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrorsWrap(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resample: %w", ErrInvalidRate)
	if !errors.Is(wrapped, ErrInvalidRate) {
		t.Error("errors.Is() failed for wrapped ErrInvalidRate")
	}
	if errors.Is(wrapped, ErrEmptyBuffer) {
		t.Error("errors.Is() matched an unrelated error")
	}
}
