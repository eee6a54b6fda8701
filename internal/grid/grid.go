// Package grid implements the 16x16 text cell grids that describe one attribute
// of every opcode slot of an 8-bit instruction set.
package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Size is the number of rows and columns of a grid.
const Size = 16

// Grid is an ordered arrangement of text cells. The row index encodes the high
// nibble and the column index the low nibble of an opcode byte.
type Grid struct {
	Name  string
	Cells [][]string
}

// Set contains the four attribute grids of an instruction set.
type Set struct {
	Mnemonic   Grid
	Addressing Grid
	Bytes      Grid
	Cycles     Grid
}

// Grids returns the grids of the set in the fixed load order.
func (s Set) Grids() []Grid {
	return []Grid{s.Mnemonic, s.Addressing, s.Bytes, s.Cycles}
}

// Load reads a tab delimited grid. Cells are trimmed of surrounding whitespace,
// the dimensions are not checked here but by the table builder.
func Load(name string, r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	g := Grid{Name: name}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Grid{}, fmt.Errorf("reading %s grid: %w", name, err)
		}

		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		g.Cells = append(g.Cells, row)
	}
	return g, nil
}

// Cell returns the cell at the given position or an empty string if the
// position is outside of the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Cells) {
		return ""
	}
	cells := g.Cells[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// Rows returns the number of rows of the grid.
func (g Grid) Rows() int {
	return len(g.Cells)
}

// Columns returns the number of cells of the given row.
func (g Grid) Columns(row int) int {
	if row < 0 || row >= len(g.Cells) {
		return 0
	}
	return len(g.Cells[row])
}

// New returns an empty grid of the fixed size with all cells blank.
func New(name string) Grid {
	g := Grid{
		Name:  name,
		Cells: make([][]string, Size),
	}
	for i := range g.Cells {
		g.Cells[i] = make([]string, Size)
	}
	return g
}

// NewSet returns a set of four empty grids.
func NewSet() Set {
	return Set{
		Mnemonic:   New("mnemonic"),
		Addressing: New("addressing"),
		Bytes:      New("byte length"),
		Cycles:     New("cycle length"),
	}
}

// SetSlot fills the cells of all four grids at the given position.
func (s Set) SetSlot(row, col int, mnemonic, addressing, bytes, cycles string) {
	s.Mnemonic.Cells[row][col] = mnemonic
	s.Addressing.Cells[row][col] = addressing
	s.Bytes.Cells[row][col] = bytes
	s.Cycles.Cells[row][col] = cycles
}
