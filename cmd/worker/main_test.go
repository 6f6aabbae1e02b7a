package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/anthropic"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no text content", err: fmt.Errorf("generate plan: %w", anthropic.ErrNoTextContent), want: false},
		{name: "context deadline", err: context.DeadlineExceeded, want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "rate limited", err: errors.New("generation request failed: status 429"), want: true},
		{name: "overloaded", err: errors.New("generation request failed: status 529"), want: true},
		{name: "bad request", err: errors.New("generation request failed: status 400"), want: false},
		{name: "auth failure", err: errors.New("generation request failed: status 401"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
