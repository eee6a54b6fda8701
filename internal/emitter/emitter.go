// Package emitter implements the artifact emitters that derive the generated
// source artifacts from the opcode table.
package emitter

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/naming"
	"github.com/retroenv/opgen/internal/opcode"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// GeneratedHeader marks the output as generated code.
const GeneratedHeader = "Code generated by opgen. DO NOT EDIT."

// Artifact is one of the generated outputs.
type Artifact int

// Artifacts that can be emitted.
const (
	Enum Artifact = iota
	Dispatch
	OpcodeStubs
	AddressingStubs
)

func (a Artifact) String() string {
	switch a {
	case Enum:
		return "enum"
	case Dispatch:
		return "dispatch"
	case OpcodeStubs:
		return "opcode stubs"
	case AddressingStubs:
		return "addressing stubs"
	default:
		return fmt.Sprintf("Artifact(%d)", int(a))
	}
}

// Options of the emitter.
type Options struct {
	Header     bool   // output the generated code header comment
	ExtraCycle bool   // output the extra cycle flag in dispatch descriptors
	Format     bool   // format the output if the dialect supports it
	Package    string // package name for dialects that need one
}

// NewOptions returns a new options instance with default options.
func NewOptions() Options {
	return Options{
		Header:     true,
		ExtraCycle: true,
		Format:     true,
	}
}

// Emitter writes artifacts of an opcode table using a dialect.
type Emitter struct {
	logger  *log.Logger
	dialect dialect.Dialect
	options Options
}

// New creates a new emitter.
func New(logger *log.Logger, d dialect.Dialect, options Options) *Emitter {
	return &Emitter{
		logger:  logger,
		dialect: d,
		options: options,
	}
}

// Emit writes the artifact for the table. The artifact is rendered completely
// before anything is written, an error never results in partial output.
func (e *Emitter) Emit(w io.Writer, artifact Artifact, table *opcode.Table) error {
	doc := dialect.Document{
		Package:    e.options.Package,
		ExtraCycle: e.options.ExtraCycle,
		Format:     e.options.Format,
	}
	if e.options.Header {
		doc.Header = GeneratedHeader
	}

	buf := &bytes.Buffer{}
	var err error

	switch artifact {
	case Enum:
		doc.Members, err = EnumMembers(table)
		if err == nil {
			e.logger.Debug("Emitting enum", log.Int("members", len(doc.Members)))
			err = e.dialect.Enum(buf, doc)
		}

	case Dispatch:
		doc.Cases, err = DispatchCases(table)
		if err == nil {
			e.logger.Debug("Emitting dispatch table", log.Int("cases", len(doc.Cases)))
			err = e.dialect.Dispatch(buf, doc)
		}

	case OpcodeStubs:
		doc.OpcodeStubs, err = OpcodeHandlerStubs(table)
		if err == nil {
			e.logger.Debug("Emitting opcode handler stubs", log.Int("handlers", len(doc.OpcodeStubs)))
			err = e.dialect.OpcodeStubs(buf, doc)
		}

	case AddressingStubs:
		doc.AddressingStubs, err = AddressingHandlerStubs()
		if err == nil {
			e.logger.Debug("Emitting addressing handler stubs", log.Int("handlers", len(doc.AddressingStubs)))
			err = e.dialect.AddressingStubs(buf, doc)
		}

	default:
		return fmt.Errorf("unsupported artifact '%s'", artifact)
	}

	if err != nil {
		return fmt.Errorf("emitting %s: %w", artifact, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", artifact, err)
	}
	return nil
}

// EnumMembers returns an enumeration member for every defined opcode in table
// traversal order.
func EnumMembers(table *opcode.Table) ([]dialect.EnumMember, error) {
	records := table.Records()
	members := make([]dialect.EnumMember, 0, len(records))

	for _, record := range records {
		symbol, err := record.Symbol()
		if err != nil {
			return nil, fmt.Errorf("opcode %s: %w", record.Hex(), err)
		}
		members = append(members, dialect.EnumMember{
			Name:  symbol,
			Value: record.Hex(),
		})
	}
	return members, nil
}

// DispatchCases returns the instruction descriptor of every defined opcode in
// table traversal order.
func DispatchCases(table *opcode.Table) ([]dialect.DispatchCase, error) {
	records := table.Records()
	cases := make([]dialect.DispatchCase, 0, len(records))

	for _, record := range records {
		c, err := dispatchCase(record)
		if err != nil {
			return nil, fmt.Errorf("opcode %s: %w", record.Hex(), err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func dispatchCase(record opcode.Record) (dialect.DispatchCase, error) {
	symbol, err := record.Symbol()
	if err != nil {
		return dialect.DispatchCase{}, err
	}
	addressingHandler, err := naming.AddressingHandlerName(record.Addressing)
	if err != nil {
		return dialect.DispatchCase{}, err
	}
	display, err := naming.DisplayName(record.Addressing)
	if err != nil {
		return dialect.DispatchCase{}, err
	}
	category, err := record.Category()
	if err != nil {
		return dialect.DispatchCase{}, err
	}

	return dialect.DispatchCase{
		Symbol:            symbol,
		Cycles:            record.Cycles,
		Bytes:             record.Bytes,
		ExtraCycle:        record.ExtraCycle,
		AddressingHandler: addressingHandler,
		Category:          category,
		OpcodeHandler:     naming.HandlerName(record.Mnemonic, category),
		Mnemonic:          strings.ToUpper(record.Mnemonic),
		Addressing:        display,
	}, nil
}

// OpcodeHandlerStubs returns one stub per distinct handler name of the table,
// sorted by name.
func OpcodeHandlerStubs(table *opcode.Table) ([]dialect.OpcodeStub, error) {
	seen := set.New[string]()
	var stubs []dialect.OpcodeStub

	for _, record := range table.Records() {
		category, err := record.Category()
		if err != nil {
			return nil, fmt.Errorf("opcode %s: %w", record.Hex(), err)
		}

		name := naming.HandlerName(record.Mnemonic, category)
		if seen.Contains(name) {
			continue
		}
		seen.Add(name)

		stubs = append(stubs, dialect.OpcodeStub{
			Name:     name,
			Category: category,
		})
	}

	slices.SortFunc(stubs, func(a, b dialect.OpcodeStub) int {
		return strings.Compare(a.Name, b.Name)
	})
	return stubs, nil
}

// AddressingHandlerStubs returns one stub per addressing mode of the catalog,
// independent of the modes used by the table.
func AddressingHandlerStubs() ([]dialect.AddressingStub, error) {
	modes := naming.Modes()
	stubs := make([]dialect.AddressingStub, 0, len(modes))

	for _, mode := range modes {
		name, err := naming.AddressingHandlerName(mode)
		if err != nil {
			return nil, err
		}
		display, err := naming.DisplayName(mode)
		if err != nil {
			return nil, err
		}
		stubs = append(stubs, dialect.AddressingStub{
			Name:    name,
			Display: display,
		})
	}
	return stubs, nil
}
