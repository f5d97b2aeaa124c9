package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	inner := &AppError{Code: CodeDialNode, Op: "dial", Err: errors.New("connection refused")}
	outer := &AppError{Code: CodeNoProvider, Op: "connect", Err: fmt.Errorf("all nodes failed: %w", inner)}
	wrapped := fmt.Errorf("send: %w", outer)

	tcs := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"outermost", wrapped, CodeNoProvider, true},
		{"nested", wrapped, CodeDialNode, true},
		{"absent", wrapped, CodeNonce, false},
		{"plain error", errors.New("boom"), CodeNoProvider, false},
		{"nil", nil, CodeNoProvider, false},
	}
	for _, tc := range tcs {
		if got := HasCode(tc.err, tc.code); got != tc.want {
			t.Fatalf("%s: HasCode(%v, %s) = %v, want %v", tc.name, tc.err, tc.code, got, tc.want)
		}
	}
}
