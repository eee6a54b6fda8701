package config

import (
	"testing"

	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestConsoleArtifact(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
		want bool
	}{
		{
			name: "emit to console",
			opts: options.Program{Mode: options.EmitEnum},
			want: true,
		},
		{
			name: "emit to file",
			opts: options.Program{Mode: options.EmitEnum, Parameters: options.Parameters{Output: "opcodes.rs"}},
			want: false,
		},
		{
			name: "inspect",
			opts: options.Program{Mode: options.Inspect},
			want: false,
		},
		{
			name: "no mode",
			opts: options.Program{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsoleArtifact(tt.opts))
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(options.Program{Flags: options.Flags{Debug: true}}))
	assert.NotNil(t, CreateLogger(options.Program{Mode: options.EmitDispatch}))
}
