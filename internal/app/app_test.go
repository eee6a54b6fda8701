package app

import (
	"testing"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/emitter"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestInitializeDialect(t *testing.T) {
	for _, name := range dialect.Names() {
		d, err := InitializeDialect(name)
		assert.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := InitializeDialect("cobol")
	assert.ErrorContains(t, err, "unsupported output language 'cobol'")
}

func TestArtifactForMode(t *testing.T) {
	tests := []struct {
		mode options.Mode
		want emitter.Artifact
	}{
		{options.EmitEnum, emitter.Enum},
		{options.EmitDispatch, emitter.Dispatch},
		{options.EmitOpcodeStubs, emitter.OpcodeStubs},
		{options.EmitAddressingStubs, emitter.AddressingStubs},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			artifact, err := ArtifactForMode(tt.mode)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, artifact)
		})
	}

	_, err := ArtifactForMode(options.Inspect)
	assert.Error(t, err)
}

func TestEmitterOptions(t *testing.T) {
	opts := options.Program{
		OutputFlags: options.OutputFlags{
			NoHeader: true,
			Package:  "nes",
		},
	}

	emitterOpts := EmitterOptions(opts)
	assert.False(t, emitterOpts.Header)
	assert.True(t, emitterOpts.Format)
	assert.Equal(t, "nes", emitterOpts.Package)
}

func TestEmitterOptionsExtraCycle(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		flags   options.OutputFlags
		want    bool
	}{
		{name: "rust default", dialect: dialect.Rust, want: false},
		{name: "golang default", dialect: dialect.Golang, want: true},
		{name: "rust forced on", dialect: dialect.Rust, flags: options.OutputFlags{ExtraCycle: true}, want: true},
		{name: "golang forced off", dialect: dialect.Golang, flags: options.OutputFlags{NoExtraCycle: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Flags:       options.Flags{Dialect: tt.dialect},
				OutputFlags: tt.flags,
			}
			assert.Equal(t, tt.want, EmitterOptions(opts).ExtraCycle)
		})
	}
}
