package golang

import (
	"bytes"
	"go/format"
	"strings"
	"testing"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/naming"
	"github.com/retroenv/retrogolib/assert"
)

func TestEnum(t *testing.T) {
	doc := dialect.Document{
		Header:  "Code generated by opgen. DO NOT EDIT.",
		Package: "m6502",
		Format:  true,
		Members: []dialect.EnumMember{
			{Name: "BRK_imp", Value: "0x00"},
			{Name: "LDA_imm", Value: "0xA9"},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, New().Enum(&buf, doc))

	expected := `// Code generated by opgen. DO NOT EDIT.

package m6502

// Opcode is the byte value of an instruction.
type Opcode uint8

// Opcodes of all defined instructions.
const (
	BRK_imp Opcode = 0x00
	LDA_imm Opcode = 0xA9
)
`
	assert.Equal(t, expected, buf.String())
}

func TestEnumEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New().Enum(&buf, dialect.Document{Format: true}))
	assert.True(t, strings.HasPrefix(buf.String(), "package cpu\n"))
}

func TestDispatch(t *testing.T) {
	doc := dialect.Document{
		ExtraCycle: true,
		Format:     true,
		Cases: []dialect.DispatchCase{
			{
				Symbol:            "LDA_imm",
				Cycles:            2,
				Bytes:             2,
				AddressingHandler: "imm",
				Category:          naming.ImmediateOperand,
				OpcodeHandler:     "lda_immediateoperand",
				Mnemonic:          "LDA",
				Addressing:        "IMM",
			},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, New().Dispatch(&buf, doc))

	expected := `package cpu

// instructions maps every opcode to its instruction descriptor.
var instructions = map[Opcode]*Instruction{
	LDA_imm: {
		Cycles:       2,
		Bytes:        2,
		ExtraCycle:   false,
		AddrDelegate: imm,
		OpDelegate:   ImmediateOperandDelegate(lda_immediateoperand),
		Mnemonic:     "LDA",
		Addressing:   "IMM",
	},
}
`
	assert.Equal(t, expected, buf.String())
}

func TestStubsAreFormatted(t *testing.T) {
	doc := dialect.Document{
		Format: true,
		OpcodeStubs: []dialect.OpcodeStub{
			{Name: "asl_nooperand", Category: naming.NoOperand},
			{Name: "lda_immediateoperand", Category: naming.ImmediateOperand},
			{Name: "sta_addressoperand", Category: naming.AddressOperand},
		},
		AddressingStubs: []dialect.AddressingStub{
			{Name: "zp_x", Display: "ZP, X"},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, New().OpcodeStubs(&buf, doc))
	source := buf.String()
	assert.Contains(t, source, "func asl_nooperand(regs *Registers, cycle int) BusMessage {")
	assert.Contains(t, source, "func lda_immediateoperand(regs *Registers, immediate uint8, _ int) BusMessage {")
	assert.Contains(t, source, "func sta_addressoperand(regs *Registers, address uint16, cycle int) BusMessage {")
	assert.Contains(t, source, `panic("not yet implemented: sta_addressoperand")`)

	formatted, err := format.Source(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, source, string(formatted))

	buf.Reset()
	assert.NoError(t, New().AddressingStubs(&buf, doc))
	assert.Contains(t, buf.String(), "// zp_x resolves the ZP, X addressing mode.")
	assert.Contains(t, buf.String(), "func zp_x(regs *Registers, cycle int) AddrDelegateReturn {")
}

func TestUnformattedOutput(t *testing.T) {
	doc := dialect.Document{
		Members: []dialect.EnumMember{{Name: "NOP_imp", Value: "0xEA"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, New().Enum(&buf, doc))
	assert.Contains(t, buf.String(), "\tNOP_imp Opcode = 0xEA\n")
}

func TestInvalidSourceFailsFormatting(t *testing.T) {
	doc := dialect.Document{
		Format:  true,
		Members: []dialect.EnumMember{{Name: "B-1", Value: "0x01"}},
	}

	var buf bytes.Buffer
	assert.Error(t, New().Enum(&buf, doc))
	assert.Equal(t, 0, buf.Len())
}
