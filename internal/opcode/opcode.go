// Package opcode contains the normalized opcode table that is built from the
// four attribute grids of an instruction set.
package opcode

import (
	"errors"
	"fmt"

	"github.com/retroenv/opgen/internal/naming"
)

// Slots is the number of opcode slots of the table.
const Slots = 256

var (
	// ErrDimensionMismatch is returned if a grid is not 16x16.
	ErrDimensionMismatch = errors.New("grid dimension mismatch")
	// ErrInconsistentGridShape is returned if the grids disagree on whether a slot is empty.
	ErrInconsistentGridShape = errors.New("inconsistent grid shape")
	// ErrMalformedNumericField is returned for byte or cycle cells that are not positive integers.
	ErrMalformedNumericField = errors.New("malformed numeric field")
	// ErrDuplicateSlot is returned if two records share a byte value.
	ErrDuplicateSlot = errors.New("duplicate opcode slot")
)

// Record is a defined opcode of the table.
type Record struct {
	Mnemonic   string
	Addressing naming.Mode
	Bytes      int  // instruction length including the opcode byte
	Cycles     int  // base cycle count
	ExtraCycle bool // may take an additional cycle depending on the addressing

	Row int // high nibble
	Col int // low nibble
}

// Byte returns the opcode byte value of the record.
func (r Record) Byte() uint8 {
	return uint8(r.Row<<4 | r.Col)
}

// Hex returns the opcode byte value formatted as 2 hex digits with 0x prefix.
func (r Record) Hex() string {
	return fmt.Sprintf("0x%02X", r.Byte())
}

// Symbol returns the enumeration member name of the opcode.
func (r Record) Symbol() (string, error) {
	return naming.OpcodeSymbol(r.Mnemonic, r.Addressing)
}

// Category returns the operand category of the opcode.
func (r Record) Category() (naming.OperandCategory, error) {
	return naming.Category(r.Addressing)
}

// HandlerName returns the name of the opcode handler function.
func (r Record) HandlerName() (string, error) {
	category, err := r.Category()
	if err != nil {
		return "", err
	}
	return naming.HandlerName(r.Mnemonic, category), nil
}

// Position returns the grid position of an opcode byte value.
func Position(b uint8) (row, col int) {
	return int(b >> 4), int(b & 0x0f)
}

// Table is an immutable table of all 256 opcode slots. Empty slots are
// undefined opcodes.
type Table struct {
	slots [Slots]*Record
	count int
}

// New creates a table from the given records. The records have to be unique
// by byte value and use a known addressing mode.
func New(records ...Record) (*Table, error) {
	t := &Table{}
	for _, record := range records {
		if record.Row < 0 || record.Row > 0x0f || record.Col < 0 || record.Col > 0x0f {
			return nil, fmt.Errorf("%w: position %d/%d", ErrDimensionMismatch, record.Row, record.Col)
		}
		if !record.Addressing.Valid() {
			return nil, fmt.Errorf("opcode %s: %w %d", record.Hex(), naming.ErrUnknownAddressingMode, int(record.Addressing))
		}
		if err := t.add(record); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(record Record) error {
	b := record.Byte()
	if t.slots[b] != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateSlot, record.Hex())
	}
	t.slots[b] = &record
	t.count++
	return nil
}

// Get returns the record of the given opcode byte.
func (t *Table) Get(b uint8) (Record, bool) {
	record := t.slots[b]
	if record == nil {
		return Record{}, false
	}
	return *record, true
}

// Len returns the number of defined opcodes.
func (t *Table) Len() int {
	return t.count
}

// Records returns copies of all defined opcodes in traversal order: the high
// nibble is the outer loop, the low nibble the inner loop, which results in
// ascending byte values.
func (t *Table) Records() []Record {
	records := make([]Record, 0, t.count)
	for row := range 16 {
		for col := range 16 {
			record := t.slots[row<<4|col]
			if record != nil {
				records = append(records, *record)
			}
		}
	}
	return records
}
