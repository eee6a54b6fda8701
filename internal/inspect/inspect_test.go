package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/opgen/internal/naming"
	"github.com/retroenv/opgen/internal/opcode"
	"github.com/retroenv/retrogolib/assert"
)

func testTable(t *testing.T) *opcode.Table {
	t.Helper()
	table, err := opcode.New(
		opcode.Record{Mnemonic: "BRK", Addressing: naming.Implied, Bytes: 1, Cycles: 7},
		opcode.Record{Mnemonic: "ORA", Addressing: naming.IndirectX, Bytes: 2, Cycles: 6, Col: 1},
		opcode.Record{Mnemonic: "LDA", Addressing: naming.AbsoluteX, Bytes: 3, Cycles: 4, ExtraCycle: true, Row: 0xB, Col: 0xD},
	)
	assert.NoError(t, err)
	return table
}

func TestPrintAll(t *testing.T) {
	var out bytes.Buffer
	printer := New(&out, nil)
	assert.NoError(t, printer.Print(testTable(t)))

	output := out.String()
	assert.Equal(t, opcode.Slots, strings.Count(output, separator))
	assert.True(t, strings.HasPrefix(output, separator+"\n$00 BRK\nimplied\n1  7\n"+separator+"\n$01 ORA\n(ind, x)\n2  6\n"))
	assert.Contains(t, output, "$02 undefined\n")
	assert.Contains(t, output, "$BD LDA\nabs, x\n3  4*\n")
}

func TestLineAcknowledger(t *testing.T) {
	t.Run("stops at end of input", func(t *testing.T) {
		var out bytes.Buffer
		printer := New(&out, NewLineAcknowledger(strings.NewReader("\n\n")))
		assert.NoError(t, printer.Print(testTable(t)))
		assert.Equal(t, 3, strings.Count(out.String(), separator))
	})

	t.Run("stops at q", func(t *testing.T) {
		var out bytes.Buffer
		printer := New(&out, NewLineAcknowledger(strings.NewReader("\nq\n\n\n")))
		assert.NoError(t, printer.Print(testTable(t)))
		assert.Equal(t, 2, strings.Count(out.String(), separator))
	})
}
