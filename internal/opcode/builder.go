package opcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/opgen/internal/grid"
	"github.com/retroenv/opgen/internal/naming"
)

// extraCycleMarker marks cycle counts that can increase by one cycle, for
// example on page crossing.
const extraCycleMarker = "*"

// Build merges the four grids of the set into a table. The mnemonic grid
// decides whether a slot is defined, the other grids have to agree with it.
// Grid row is the high nibble and grid column the low nibble of the opcode.
func Build(set grid.Set) (*Table, error) {
	for _, g := range set.Grids() {
		if err := checkDimensions(g); err != nil {
			return nil, err
		}
	}

	t := &Table{}
	for row := range grid.Size {
		for col := range grid.Size {
			record, ok, err := buildSlot(set, row, col)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if err := t.add(record); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func checkDimensions(g grid.Grid) error {
	if g.Rows() != grid.Size {
		return fmt.Errorf("%w: %s grid has %d rows, expected %d",
			ErrDimensionMismatch, g.Name, g.Rows(), grid.Size)
	}
	for row := range grid.Size {
		if columns := g.Columns(row); columns != grid.Size {
			return fmt.Errorf("%w: %s grid row %d has %d columns, expected %d",
				ErrDimensionMismatch, g.Name, row, columns, grid.Size)
		}
	}
	return nil
}

func buildSlot(set grid.Set, row, col int) (Record, bool, error) {
	mnemonic := strings.TrimSpace(set.Mnemonic.Cell(row, col))
	defined := mnemonic != ""

	for _, g := range set.Grids()[1:] {
		if (strings.TrimSpace(g.Cell(row, col)) != "") != defined {
			return Record{}, false, fmt.Errorf("%w: opcode 0x%X%X is %s in mnemonic grid but not in %s grid",
				ErrInconsistentGridShape, row, col, definedState(defined), g.Name)
		}
	}
	if !defined {
		return Record{}, false, nil
	}

	record := Record{
		Mnemonic: mnemonic,
		Row:      row,
		Col:      col,
	}

	var err error
	record.Addressing, err = naming.ParseMode(set.Addressing.Cell(row, col))
	if err != nil {
		return Record{}, false, fmt.Errorf("opcode %s: %w", record.Hex(), err)
	}

	record.Bytes, err = parseCount(set.Bytes.Cell(row, col))
	if err != nil {
		return Record{}, false, fmt.Errorf("opcode %s byte length: %w", record.Hex(), err)
	}

	record.Cycles, record.ExtraCycle, err = parseCycles(set.Cycles.Cell(row, col))
	if err != nil {
		return Record{}, false, fmt.Errorf("opcode %s cycle length: %w", record.Hex(), err)
	}

	return record, true, nil
}

func definedState(defined bool) string {
	if defined {
		return "defined"
	}
	return "empty"
}

// parseCycles parses a cycle count cell and returns whether the cell carried
// the extra cycle marker.
func parseCycles(cell string) (int, bool, error) {
	value := strings.TrimSpace(cell)
	marked := strings.HasSuffix(value, extraCycleMarker)
	if marked {
		value = strings.TrimSpace(strings.TrimSuffix(value, extraCycleMarker))
	}

	i, err := parseCount(value)
	if err != nil {
		return 0, false, fmt.Errorf("%w '%s'", ErrMalformedNumericField, cell)
	}
	return i, marked, nil
}

// parseCount parses a positive decimal integer cell. Signs and markers are
// rejected.
func parseCount(cell string) (int, error) {
	value := strings.TrimSpace(cell)
	if value == "" || strings.TrimLeft(value, "0123456789") != "" {
		return 0, fmt.Errorf("%w '%s'", ErrMalformedNumericField, cell)
	}

	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("%w '%s'", ErrMalformedNumericField, cell)
	}
	return i, nil
}
