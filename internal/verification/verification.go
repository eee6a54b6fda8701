// Package verification compares the opcode table against the reference 6502
// instruction set.
package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/opgen/internal/naming"
	"github.com/retroenv/opgen/internal/opcode"
	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/log"
)

// ErrMismatch is returned in strict mode if the table differs from the
// reference instruction set.
var ErrMismatch = errors.New("opcode table differs from the reference instruction set")

// maxReportedMismatches limits the number of mismatches that get logged.
const maxReportedMismatches = 32

var referenceModes = map[naming.Mode]m6502.AddressingMode{
	naming.Accumulator: m6502.AccumulatorAddressing,
	naming.Immediate:   m6502.ImmediateAddressing,
	naming.Absolute:    m6502.AbsoluteAddressing,
	naming.ZeroPage:    m6502.ZeroPageAddressing,
	naming.ZeroPageX:   m6502.ZeroPageXAddressing,
	naming.ZeroPageY:   m6502.ZeroPageYAddressing,
	naming.AbsoluteX:   m6502.AbsoluteXAddressing,
	naming.AbsoluteY:   m6502.AbsoluteYAddressing,
	naming.Implied:     m6502.ImpliedAddressing,
	naming.Relative:    m6502.RelativeAddressing,
	naming.IndirectX:   m6502.IndirectXAddressing,
	naming.IndirectY:   m6502.IndirectYAddressing,
	naming.Indirect:    m6502.IndirectAddressing,
}

// ReferenceMode returns the mode of the catalog that matches the reference
// addressing mode.
func ReferenceMode(addressing m6502.AddressingMode) (naming.Mode, bool) {
	for mode, reference := range referenceModes {
		if reference == addressing {
			return mode, true
		}
	}
	return 0, false
}

// Mismatch describes a slot that differs from the reference instruction set.
type Mismatch struct {
	Opcode   uint8
	Expected string
	Got      string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("$%02X: expected %s, got %s", m.Opcode, m.Expected, m.Got)
}

// Compare compares every slot of the table with the official instructions of
// the reference 6502 table and returns all mismatches. Unofficial reference
// opcodes are treated as undefined.
func Compare(table *opcode.Table) []Mismatch {
	var mismatches []Mismatch

	for i := range opcode.Slots {
		b := uint8(i)
		ref := m6502.Opcodes[b]
		refDefined := ref.Instruction != nil && !ref.Instruction.Unofficial

		record, defined := table.Get(b)
		switch {
		case !refDefined && !defined:
			continue

		case !refDefined:
			mismatches = append(mismatches, Mismatch{
				Opcode:   b,
				Expected: "undefined",
				Got:      describe(record),
			})

		case !defined:
			mismatches = append(mismatches, Mismatch{
				Opcode:   b,
				Expected: describeReference(ref),
				Got:      "undefined",
			})

		default:
			expected, ok := referenceModes[record.Addressing]
			if ok && expected == ref.Addressing && strings.EqualFold(record.Mnemonic, ref.Instruction.Name) {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				Opcode:   b,
				Expected: describeReference(ref),
				Got:      describe(record),
			})
		}
	}

	return mismatches
}

// Verify compares the table with the reference instruction set and logs the
// mismatches. In strict mode any mismatch results in an error.
func Verify(logger *log.Logger, table *opcode.Table, strict bool) error {
	mismatches := Compare(table)
	if len(mismatches) == 0 {
		logger.Info("Verification successful", log.Int("opcodes", table.Len()))
		return nil
	}

	for i, mismatch := range mismatches {
		if i == maxReportedMismatches {
			break
		}
		logger.Warn("Opcode mismatch",
			log.Hex("opcode", mismatch.Opcode),
			log.String("expected", mismatch.Expected),
			log.String("got", mismatch.Got))
	}

	if strict {
		return fmt.Errorf("%w: %d mismatching opcodes", ErrMismatch, len(mismatches))
	}
	logger.Warn("Verification found differences", log.Int("mismatches", len(mismatches)))
	return nil
}

func describe(record opcode.Record) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(record.Mnemonic), record.Addressing)
}

func describeReference(ref m6502.Opcode) string {
	name := strings.ToUpper(ref.Instruction.Name)
	mode, ok := ReferenceMode(ref.Addressing)
	if !ok {
		return fmt.Sprintf("%s addressing %d", name, ref.Addressing)
	}
	return fmt.Sprintf("%s %s", name, mode)
}
