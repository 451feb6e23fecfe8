package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("clock unavailable"), "Error: clock unavailable"},
		{
			"wrapped error",
			fmt.Errorf("deployment check failed: %w", errors.New("wrong object type")),
			"Error: deployment check failed: wrong object type",
		},
		{
			"joined errors",
			errors.Join(errors.New("treasury missing"), nil, errors.New("registry missing")),
			"Error: treasury missing\n  registry missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
