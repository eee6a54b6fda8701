// Package rust renders the artifacts as Rust source code, matching the types of
// a Rust instruction set implementation that uses an Instruction descriptor
// with addressing and opcode delegates.
package rust

import (
	"fmt"
	"io"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/naming"
)

var enumHeader = "#[repr(u8)]\npub enum Opcode {\n"

var enumMember = "    %s = %s,\n"

var dispatchCase = `    Opcode::%s => &Instruction {
        cycles: %d,
        bytes: %d,
`

var dispatchExtraCycle = "        extra_cycle: %t,\n"

var dispatchDelegates = `        addr_delegate: addressing::%s,
        op_delegate: OpDelegate::%s(ops::%s),
        mnemonic: %q,
        addressing: %q,
    },
`

var opcodeSignatures = map[naming.OperandCategory]string{
	naming.NoOperand:        "pub fn %s(regs: &mut CPURegisters, cycle: usize) -> BusMessage {\n",
	naming.ImmediateOperand: "pub fn %s(regs: &mut CPURegisters, immediate: u8, _cycle: usize) -> BusMessage {\n",
	naming.AddressOperand:   "pub fn %s(regs: &mut CPURegisters, address: u16, cycle: usize) -> BusMessage {\n",
}

var opcodeBody = "    todo!(\"functionality for %s()\");\n}\n"

var addressingStub = `pub fn %s(regs: &mut CPURegisters, cycle: usize) -> AddrDelegateReturn {
    todo!("functionality for %s() addressing");
}
`

const commentPrefix = "//"

// Dialect renders Rust source code.
type Dialect struct{}

var _ dialect.Dialect = Dialect{}

// New returns a new Rust dialect.
// nolint: ireturn
func New() dialect.Dialect {
	return Dialect{}
}

// Name returns the name of the dialect.
func (d Dialect) Name() string {
	return dialect.Rust
}

// Enum writes the opcode enumeration with an 8 bit representation.
func (d Dialect) Enum(w io.Writer, doc dialect.Document) error {
	if err := dialect.WriteHeader(w, doc, commentPrefix); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, enumHeader); err != nil {
		return fmt.Errorf("writing enum header: %w", err)
	}
	for _, member := range doc.Members {
		if _, err := fmt.Fprintf(w, enumMember, member.Name, member.Value); err != nil {
			return fmt.Errorf("writing enum member: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("writing enum footer: %w", err)
	}
	return nil
}

// Dispatch writes a match expression that maps every opcode to its
// instruction descriptor.
func (d Dialect) Dispatch(w io.Writer, doc dialect.Document) error {
	if err := dialect.WriteHeader(w, doc, commentPrefix); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "match self {"); err != nil {
		return fmt.Errorf("writing match header: %w", err)
	}

	for _, c := range doc.Cases {
		if _, err := fmt.Fprintf(w, dispatchCase, c.Symbol, c.Cycles, c.Bytes); err != nil {
			return fmt.Errorf("writing match arm: %w", err)
		}
		if doc.ExtraCycle {
			if _, err := fmt.Fprintf(w, dispatchExtraCycle, c.ExtraCycle); err != nil {
				return fmt.Errorf("writing match arm: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, dispatchDelegates, c.AddressingHandler, c.Category,
			c.OpcodeHandler, c.Mnemonic, c.Addressing); err != nil {
			return fmt.Errorf("writing match arm: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("writing match footer: %w", err)
	}
	return nil
}

// OpcodeStubs writes a placeholder function for every opcode handler.
func (d Dialect) OpcodeStubs(w io.Writer, doc dialect.Document) error {
	if err := dialect.WriteHeader(w, doc, commentPrefix); err != nil {
		return err
	}

	for i, stub := range doc.OpcodeStubs {
		signature, ok := opcodeSignatures[stub.Category]
		if !ok {
			return fmt.Errorf("unsupported operand category '%s' for handler %s", stub.Category, stub.Name)
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, signature, stub.Name); err != nil {
			return fmt.Errorf("writing handler signature: %w", err)
		}
		if _, err := fmt.Fprintf(w, opcodeBody, stub.Name); err != nil {
			return fmt.Errorf("writing handler body: %w", err)
		}
	}
	return nil
}

// AddressingStubs writes a placeholder function for every addressing mode.
func (d Dialect) AddressingStubs(w io.Writer, doc dialect.Document) error {
	if err := dialect.WriteHeader(w, doc, commentPrefix); err != nil {
		return err
	}

	for i, stub := range doc.AddressingStubs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, addressingStub, stub.Name, stub.Name); err != nil {
			return fmt.Errorf("writing addressing handler: %w", err)
		}
	}
	return nil
}
