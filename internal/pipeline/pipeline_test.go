package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/opgen/internal/grid"
	"github.com/retroenv/opgen/internal/inspect"
	"github.com/retroenv/opgen/internal/opcode"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/opgen/internal/verification"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testGrids() grid.Set {
	set := grid.NewSet()
	set.SetSlot(0xA, 9, "LDA", "imm", "2", "2")
	return set
}

func testOptions(mode options.Mode) options.Program {
	return options.Program{
		Flags:       options.Flags{Dialect: "rust", Quiet: true},
		OutputFlags: options.OutputFlags{NoHeader: true, Package: "cpu"},
		Mode:        mode,
	}
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t), nil)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
}

func TestExecuteEmitEnum(t *testing.T) {
	p := New(log.NewTestLogger(t), nil)

	var buf bytes.Buffer
	table, err := p.ExecuteWithGrids(context.Background(), testGrids(), testOptions(options.EmitEnum), &buf)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	expected := `#[repr(u8)]
pub enum Opcode {
    LDA_imm = 0xA9,
}
`
	assert.Equal(t, expected, buf.String())
}

func TestExecuteDispatchExtraCycleDefault(t *testing.T) {
	p := New(log.NewTestLogger(t), nil)

	var buf bytes.Buffer
	_, err := p.ExecuteWithGrids(context.Background(), testGrids(), testOptions(options.EmitDispatch), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Opcode::LDA_imm => &Instruction {")
	assert.False(t, strings.Contains(buf.String(), "extra_cycle"))

	opts := testOptions(options.EmitDispatch)
	opts.Dialect = "golang"
	buf.Reset()
	_, err = p.ExecuteWithGrids(context.Background(), testGrids(), opts, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "ExtraCycle:")
}

func TestExecuteInspect(t *testing.T) {
	ack := inspect.NewLineAcknowledger(strings.NewReader("\n"))
	p := New(log.NewTestLogger(t), ack)

	var buf bytes.Buffer
	_, err := p.ExecuteWithGrids(context.Background(), testGrids(), testOptions(options.Inspect), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "$00 undefined")
	assert.Contains(t, buf.String(), "$01 undefined")
	assert.False(t, strings.Contains(buf.String(), "$02"))
}

func TestExecuteBuildErrorWritesNothing(t *testing.T) {
	set := testGrids()
	set.SetSlot(0, 0, "BRK", "i", "", "7")

	p := New(log.NewTestLogger(t), nil)
	var buf bytes.Buffer
	_, err := p.ExecuteWithGrids(context.Background(), set, testOptions(options.EmitDispatch), &buf)
	assert.True(t, errors.Is(err, opcode.ErrInconsistentGridShape))
	assert.Equal(t, 0, buf.Len())
}

func TestExecuteStrictVerification(t *testing.T) {
	opts := testOptions(options.EmitEnum)
	opts.Verify = true
	opts.Strict = true

	p := New(log.NewTestLogger(t), nil)
	var buf bytes.Buffer
	_, err := p.ExecuteWithGrids(context.Background(), testGrids(), opts, &buf)
	assert.True(t, errors.Is(err, verification.ErrMismatch))
	assert.Equal(t, 0, buf.Len())
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(log.NewTestLogger(t), nil)
	var buf bytes.Buffer
	_, err := p.ExecuteWithGrids(ctx, testGrids(), testOptions(options.EmitEnum), &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, buf.Len())
}

func TestExecuteMissingFiles(t *testing.T) {
	opts := testOptions(options.EmitEnum)
	opts.Directory = t.TempDir()

	p := New(log.NewTestLogger(t), nil)
	_, err := p.Execute(context.Background(), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading grids")
}
