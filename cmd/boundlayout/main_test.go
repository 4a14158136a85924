package main

import (
	"context"
	"fmt"
	"testing"

	errs "github.com/matzehuels/boundlayout/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("layout: %w", context.Canceled), exitInterrupted},
		{"bad shape", errs.New(errs.ErrCodeUnsupportedShape, "shape %q", "Polygon"), exitConfig},
		{"bad options", fmt.Errorf("invalid options: %w", errs.New(errs.ErrCodeInvalidConfig, "format")), exitConfig},
		{"missing run", errs.New(errs.ErrCodeNotFound, "run %q", "x"), exitFailure},
		{"plain", fmt.Errorf("boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
