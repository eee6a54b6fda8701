// Package golang renders the artifacts as Go source code. The output is
// formatted with gofmt before it is written unless formatting is disabled.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"io"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/naming"
)

// DefaultPackage is used if the document does not name a package.
const DefaultPackage = "cpu"

var packageClause = "package %s\n\n"

var enumHeader = `// Opcode is the byte value of an instruction.
type Opcode uint8

// Opcodes of all defined instructions.
const (
`

var enumMember = "\t%s Opcode = %s\n"

var dispatchHeader = `// instructions maps every opcode to its instruction descriptor.
var instructions = map[Opcode]*Instruction{
`

var dispatchCase = "\t%s: {\n\t\tCycles: %d,\n\t\tBytes: %d,\n"

var dispatchExtraCycle = "\t\tExtraCycle: %t,\n"

var dispatchDelegates = "\t\tAddrDelegate: %s,\n\t\tOpDelegate: %sDelegate(%s),\n\t\tMnemonic: %q,\n\t\tAddressing: %q,\n\t},\n"

var opcodeSignatures = map[naming.OperandCategory]string{
	naming.NoOperand:        "func %s(regs *Registers, cycle int) BusMessage {\n",
	naming.ImmediateOperand: "func %s(regs *Registers, immediate uint8, _ int) BusMessage {\n",
	naming.AddressOperand:   "func %s(regs *Registers, address uint16, cycle int) BusMessage {\n",
}

var opcodeBody = "\tpanic(\"not yet implemented: %s\")\n}\n"

var addressingStub = `// %s resolves the %s addressing mode.
func %s(regs *Registers, cycle int) AddrDelegateReturn {
	panic("not yet implemented: %s addressing")
}
`

const commentPrefix = "//"

// Dialect renders Go source code.
type Dialect struct{}

var _ dialect.Dialect = Dialect{}

// New returns a new Go dialect.
// nolint: ireturn
func New() dialect.Dialect {
	return Dialect{}
}

// Name returns the name of the dialect.
func (d Dialect) Name() string {
	return dialect.Golang
}

// Enum writes the opcode constants of a byte sized Opcode type.
func (d Dialect) Enum(w io.Writer, doc dialect.Document) error {
	return render(w, doc, func(buf *bytes.Buffer) error {
		buf.WriteString(enumHeader)
		for _, member := range doc.Members {
			fmt.Fprintf(buf, enumMember, member.Name, member.Value)
		}
		buf.WriteString(")\n")
		return nil
	})
}

// Dispatch writes a map literal that maps every opcode to its instruction
// descriptor.
func (d Dialect) Dispatch(w io.Writer, doc dialect.Document) error {
	return render(w, doc, func(buf *bytes.Buffer) error {
		buf.WriteString(dispatchHeader)
		for _, c := range doc.Cases {
			fmt.Fprintf(buf, dispatchCase, c.Symbol, c.Cycles, c.Bytes)
			if doc.ExtraCycle {
				fmt.Fprintf(buf, dispatchExtraCycle, c.ExtraCycle)
			}
			fmt.Fprintf(buf, dispatchDelegates, c.AddressingHandler, c.Category,
				c.OpcodeHandler, c.Mnemonic, c.Addressing)
		}
		buf.WriteString("}\n")
		return nil
	})
}

// OpcodeStubs writes a placeholder function for every opcode handler.
func (d Dialect) OpcodeStubs(w io.Writer, doc dialect.Document) error {
	return render(w, doc, func(buf *bytes.Buffer) error {
		for i, stub := range doc.OpcodeStubs {
			signature, ok := opcodeSignatures[stub.Category]
			if !ok {
				return fmt.Errorf("unsupported operand category '%s' for handler %s", stub.Category, stub.Name)
			}
			if i > 0 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(buf, signature, stub.Name)
			fmt.Fprintf(buf, opcodeBody, stub.Name)
		}
		return nil
	})
}

// AddressingStubs writes a placeholder function for every addressing mode.
func (d Dialect) AddressingStubs(w io.Writer, doc dialect.Document) error {
	return render(w, doc, func(buf *bytes.Buffer) error {
		for i, stub := range doc.AddressingStubs {
			if i > 0 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(buf, addressingStub, stub.Name, stub.Display, stub.Name, stub.Name)
		}
		return nil
	})
}

// render writes the header and package clause, calls the body writer and
// optionally formats the complete source before writing it to the output.
func render(w io.Writer, doc dialect.Document, body func(buf *bytes.Buffer) error) error {
	buf := &bytes.Buffer{}
	if err := dialect.WriteHeader(buf, doc, commentPrefix); err != nil {
		return err
	}

	pkg := doc.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	fmt.Fprintf(buf, packageClause, pkg)

	if err := body(buf); err != nil {
		return err
	}

	source := buf.Bytes()
	if doc.Format {
		var err error
		source, err = format.Source(source)
		if err != nil {
			return fmt.Errorf("formatting go source: %w", err)
		}
	}
	if _, err := w.Write(source); err != nil {
		return fmt.Errorf("writing go source: %w", err)
	}
	return nil
}
