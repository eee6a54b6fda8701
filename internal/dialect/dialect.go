// Package dialect defines the available output languages of the generated
// artifacts and the data that the artifact emitters pass to them.
package dialect

import (
	"fmt"
	"io"

	"github.com/retroenv/opgen/internal/naming"
)

// Dialect names as accepted by the command line.
const (
	Golang = "golang" // Go source formatted with go/format
	Rust   = "rust"   // Rust source for the nesferratu core types
)

// Names returns the names of all dialects.
func Names() []string {
	return []string{Golang, Rust}
}

// ExtraCycleDefault returns whether dispatch descriptors of the dialect carry
// the extra cycle flag by default. The Rust descriptor type of the nesferratu
// core has no such field.
func ExtraCycleDefault(name string) bool {
	return name == Golang
}

// Dialect renders the artifacts in a specific output language. The emitters
// compute all names, a dialect only decides the textual shape.
type Dialect interface {
	Name() string
	Enum(w io.Writer, doc Document) error
	Dispatch(w io.Writer, doc Document) error
	OpcodeStubs(w io.Writer, doc Document) error
	AddressingStubs(w io.Writer, doc Document) error
}

// Document contains the naming derived view of the opcode table for one
// artifact.
type Document struct {
	Header     string // generated code comment, omitted if empty
	Package    string // package name for dialects that require one
	ExtraCycle bool   // output the extra cycle flag in dispatch descriptors
	Format     bool   // run the formatter of the language, if the dialect has one

	Members         []EnumMember
	Cases           []DispatchCase
	OpcodeStubs     []OpcodeStub
	AddressingStubs []AddressingStub
}

// EnumMember is an opcode enumeration member.
type EnumMember struct {
	Name  string // opcode symbol like LDA_imm
	Value string // byte value like 0xA9
}

// DispatchCase maps an opcode symbol to its instruction descriptor.
type DispatchCase struct {
	Symbol            string
	Cycles            int
	Bytes             int
	ExtraCycle        bool
	AddressingHandler string                 // addressing mode handler reference
	Category          naming.OperandCategory // tags the opcode handler
	OpcodeHandler     string                 // opcode handler reference
	Mnemonic          string                 // uppercased mnemonic
	Addressing        string                 // human readable addressing mode
}

// OpcodeStub is a placeholder opcode handler.
type OpcodeStub struct {
	Name     string
	Category naming.OperandCategory
}

// AddressingStub is a placeholder addressing mode handler.
type AddressingStub struct {
	Name    string
	Display string
}

// WriteHeader writes the generated code header comment, if set, followed by
// an empty line.
func WriteHeader(w io.Writer, doc Document, commentPrefix string) error {
	if doc.Header == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s %s\n\n", commentPrefix, doc.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}
