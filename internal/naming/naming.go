// Package naming contains the naming and classification rules that derive
// symbol names, handler names and operand categories from opcode attributes.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAddressingMode is returned for addressing modes outside of the
// fixed catalog.
var ErrUnknownAddressingMode = errors.New("unknown addressing mode")

// Mode is an addressing mode of the closed catalog.
type Mode int

// Addressing modes, in catalog order.
const (
	Accumulator Mode = iota
	Immediate
	Absolute
	ZeroPage
	ZeroPageX
	ZeroPageY
	AbsoluteX
	AbsoluteY
	Implied
	Relative
	IndirectX
	IndirectY
	Indirect

	modeCount
)

// OperandCategory groups addressing modes by the shape of the operand that an
// opcode handler receives.
type OperandCategory int

// Operand categories.
const (
	NoOperand OperandCategory = iota
	ImmediateOperand
	AddressOperand
)

type modeInfo struct {
	identifier string // descriptive identifier
	token      string // token used in the addressing grid
	short      string
	display    string
	category   OperandCategory
}

var catalog = [modeCount]modeInfo{
	Accumulator: {"accumulator", "accum", "acc", "Accum", NoOperand},
	Immediate:   {"immediate", "imm", "imm", "IMM", ImmediateOperand},
	Absolute:    {"absolute", "abs", "abs", "Absolute", AddressOperand},
	ZeroPage:    {"zero-page", "zp", "zp", "ZP", AddressOperand},
	ZeroPageX:   {"zero-page-indexed-by-x", "zp, x", "zp_x", "ZP, X", AddressOperand},
	ZeroPageY:   {"zero-page-indexed-by-y", "zp, y", "zp_y", "ZP, Y", AddressOperand},
	AbsoluteX:   {"absolute-indexed-by-x", "abs, x", "abs_x", "ABS, X", AddressOperand},
	AbsoluteY:   {"absolute-indexed-by-y", "abs, y", "abs_y", "ABS, Y", AddressOperand},
	Implied:     {"implied", "implied", "imp", "Implied", NoOperand},
	Relative:    {"relative", "relative", "rel", "Relative", AddressOperand},
	IndirectX:   {"indirect-indexed-by-x-pre", "(ind, x)", "ind_x", "(IND, X)", AddressOperand},
	IndirectY:   {"indirect-indexed-by-y-post", "(ind), y", "ind_y", "(IND), Y", AddressOperand},
	Indirect:    {"indirect", "indirect", "ind", "Indirect", AddressOperand},
}

// Modes returns all addressing modes of the catalog in declaration order.
func Modes() []Mode {
	modes := make([]Mode, modeCount)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode converts an addressing mode token to a mode. Both the grid tokens
// like "zp, x" and descriptive identifiers like "zero-page-indexed-by-x" are
// accepted, case-insensitive and with any spacing around commas.
func ParseMode(raw string) (Mode, error) {
	key := normalizeToken(raw)
	for i, info := range catalog {
		if key == normalizeToken(info.token) || key == info.identifier {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownAddressingMode, raw)
}

func normalizeToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", ", ")), "")
}

// Valid returns whether the mode is part of the catalog.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// String returns the descriptive identifier of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return catalog[m].identifier
}

// Token returns the token used for the mode in addressing grids.
func (m Mode) Token() string {
	if !m.Valid() {
		return ""
	}
	return catalog[m].token
}

func lookup(m Mode) (modeInfo, error) {
	if !m.Valid() {
		return modeInfo{}, fmt.Errorf("%w %d", ErrUnknownAddressingMode, int(m))
	}
	return catalog[m], nil
}

// ShortName returns the compact symbol safe name of the mode, used for enum
// members and addressing handler names.
func ShortName(m Mode) (string, error) {
	info, err := lookup(m)
	if err != nil {
		return "", err
	}
	return info.short, nil
}

// DisplayName returns the human readable label of the mode.
func DisplayName(m Mode) (string, error) {
	info, err := lookup(m)
	if err != nil {
		return "", err
	}
	return info.display, nil
}

// Category returns the operand category of the mode.
func Category(m Mode) (OperandCategory, error) {
	info, err := lookup(m)
	if err != nil {
		return 0, err
	}
	return info.category, nil
}

// String returns the name of the operand category.
func (c OperandCategory) String() string {
	switch c {
	case NoOperand:
		return "NoOperand"
	case ImmediateOperand:
		return "ImmediateOperand"
	case AddressOperand:
		return "AddressOperand"
	default:
		return fmt.Sprintf("OperandCategory(%d)", int(c))
	}
}

// OpcodeSymbol returns the enumeration member name of an opcode, the
// uppercased mnemonic joined with the addressing short name.
func OpcodeSymbol(mnemonic string, m Mode) (string, error) {
	short, err := ShortName(m)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(mnemonic) + "_" + short, nil
}

// HandlerName returns the opcode handler function name. All addressing modes of
// a mnemonic that share an operand category map to the same handler.
func HandlerName(mnemonic string, c OperandCategory) string {
	return strings.ToLower(mnemonic) + "_" + strings.ToLower(c.String())
}

// AddressingHandlerName returns the addressing mode handler function name.
func AddressingHandlerName(m Mode) (string, error) {
	return ShortName(m)
}
