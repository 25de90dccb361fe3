package e

import (
	"errors"
	"fmt"
	"testing"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "single op segment",
			err:  fmt.Errorf("service.Lifecycle.Respond: %w", ErrAlreadyTerminal),
			want: "record is no longer mutable",
		},
		{
			name: "op plus readable message",
			err:  fmt.Errorf("service.Lifecycle.Respond: request closed (cancelled): %w", ErrAlreadyTerminal),
			want: "request closed (cancelled): record is no longer mutable",
		},
		{
			name: "nested ops",
			err:  fmt.Errorf("service.Lifecycle.Create: %w", fmt.Errorf("postgres.Requests.CreateWithQuota: %w", ErrQuotaExceeded)),
			want: "request quota exceeded",
		},
		{
			name: "no op prefix",
			err:  errors.New("search radius must be 50-2000 m"),
			want: "search radius must be 50-2000 m",
		},
		{
			name: "bare sentinel",
			err:  ErrNotFound,
			want: "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason(%q) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
