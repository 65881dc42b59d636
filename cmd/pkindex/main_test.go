package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/pkindex/internal/cli"
	"github.com/rshade/pkindex/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "pkindex", root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("generic error"), want: 1},
		{name: "data load failure", err: &cli.ExitError{Code: cli.ExitDataLoad, Err: errors.New("not found")}, want: 2},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("outer: %w", &cli.ExitError{Code: 3, Err: errors.New("inner")}),
			want: 3,
		},
		{
			name: "joined exit error",
			err:  errors.Join(errors.New("outer"), &cli.ExitError{Code: 2}),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
