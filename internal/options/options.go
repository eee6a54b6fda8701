// Package options contains the program options.
package options

import "path/filepath"

// Mode selects the operation of a program run.
type Mode string

// Program modes.
const (
	Inspect             Mode = "inspect"
	EmitEnum            Mode = "emit-enum"
	EmitDispatch        Mode = "emit-dispatch"
	EmitOpcodeStubs     Mode = "emit-opcode-stubs"
	EmitAddressingStubs Mode = "emit-addressing-stubs"
)

// Modes returns all program modes.
func Modes() []Mode {
	return []Mode{Inspect, EmitEnum, EmitDispatch, EmitOpcodeStubs, EmitAddressingStubs}
}

// Default file names of the grids inside the input directory.
const (
	MnemonicFile   = "opcodes.tsv"
	AddressingFile = "addressing.tsv"
	BytesFile      = "bytelength.tsv"
	CyclesFile     = "cyclelength.tsv"
)

// Parameters contains file path options.
type Parameters struct {
	Directory  string
	Mnemonic   string
	Addressing string
	Bytes      string
	Cycles     string
	Output     string
}

// Flags contains behavior options.
type Flags struct {
	Dialect string
	Verify  bool
	Strict  bool
	Debug   bool
	Quiet   bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHeader     bool
	ExtraCycle   bool // force the extra cycle flag on, overrides the dialect default
	NoExtraCycle bool // force the extra cycle flag off
	NoFormat     bool
	NoWait       bool
	Package      string
}

// Program options of the generator.
type Program struct {
	Parameters
	Flags
	OutputFlags

	Mode Mode
}

// GridPaths returns the paths of the four grid files, falling back to the
// default file names inside the input directory.
func (p Program) GridPaths() (mnemonic, addressing, bytes, cycles string) {
	dir := p.Directory
	if dir == "" {
		dir = "."
	}
	return pathOrDefault(p.Mnemonic, dir, MnemonicFile),
		pathOrDefault(p.Addressing, dir, AddressingFile),
		pathOrDefault(p.Bytes, dir, BytesFile),
		pathOrDefault(p.Cycles, dir, CyclesFile)
}

func pathOrDefault(path, dir, name string) string {
	if path != "" {
		return path
	}
	return filepath.Join(dir, name)
}
