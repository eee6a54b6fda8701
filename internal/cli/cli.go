// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/options"
)

// modeAliases are short alternative names of the modes.
var modeAliases = map[string]options.Mode{
	"check":         options.Inspect,
	"enum":          options.EmitEnum,
	"opmatch":       options.EmitDispatch,
	"funstumps":     options.EmitOpcodeStubs,
	"addrfunstumps": options.EmitAddressingStubs,
}

var (
	modeTree    = prefixtree.New[options.Mode]()
	dialectTree = prefixtree.New[string]()
)

func init() {
	for _, mode := range options.Modes() {
		modeTree.Add(string(mode), mode)
	}
	for alias, mode := range modeAliases {
		modeTree.Add(alias, mode)
	}
	for _, name := range dialect.Names() {
		dialectTree.Add(name, name)
	}
}

// ParseFlags parses the command line arguments without the program name and
// returns the program options including the selected mode.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("opgen", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	positional := flags.Args()
	switch {
	case len(positional) == 0:
		return opts, &UsageError{flags: flags, msg: "missing mode"}
	case len(positional) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after mode, options have to be passed before the mode", positional[1]),
		}
	}

	opts.Mode, err = LookupMode(positional[0])
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information to the writer.
func (e *UsageError) ShowUsage(w io.Writer) {
	modes := make([]string, 0, len(options.Modes()))
	for _, mode := range options.Modes() {
		modes = append(modes, string(mode))
	}

	_, _ = fmt.Fprintf(w, "usage: opgen [options] <%s>\n\n", strings.Join(modes, "|"))
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	e.flags.SetOutput(io.Discard)
	_, _ = fmt.Fprintln(w)
}

// LookupMode returns the mode matching the name. Any unique prefix of a mode
// name or of one of its aliases selects the mode.
func LookupMode(name string) (options.Mode, error) {
	mode, err := modeTree.FindValue(strings.ToLower(name))
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return "", fmt.Errorf("ambiguous mode '%s'", name)
	case err != nil:
		return "", fmt.Errorf("unsupported mode '%s'", name)
	}
	return mode, nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	name := strings.ToLower(opts.Dialect)
	if name == "go" {
		name = dialect.Golang
	}

	resolved, err := dialectTree.FindValue(name)
	if err != nil {
		return fmt.Errorf("unsupported output language: %s. Valid options: %s",
			opts.Dialect, strings.Join(dialect.Names(), ", "))
	}
	opts.Dialect = resolved

	if opts.ExtraCycle && opts.NoExtraCycle {
		return errors.New("options -extracycle and -noextracycle can not be combined")
	}
	if opts.Strict && !opts.Verify {
		return errors.New("option -strict requires -verify")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Directory, "d", ".", "directory containing the grid files")
	flags.StringVar(&opts.Mnemonic, "opcodes", "", "mnemonic grid file (default <dir>/"+options.MnemonicFile+")")
	flags.StringVar(&opts.Addressing, "addressing", "", "addressing mode grid file (default <dir>/"+options.AddressingFile+")")
	flags.StringVar(&opts.Bytes, "bytes", "", "byte length grid file (default <dir>/"+options.BytesFile+")")
	flags.StringVar(&opts.Cycles, "cycles", "", "cycle length grid file (default <dir>/"+options.CyclesFile+")")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Dialect, "l", dialect.Rust, "output language of the generated code ("+strings.Join(dialect.Names(), "/")+")")
	flags.StringVar(&opts.Package, "package", "cpu", "package name of generated Go code")
	flags.BoolVar(&opts.Verify, "verify", false, "compare the opcode table with the reference 6502 instruction set")
	flags.BoolVar(&opts.Strict, "strict", false, "fail if the verification finds differences")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoHeader, "noheader", false, "do not output the generated code header comment")
	flags.BoolVar(&opts.ExtraCycle, "extracycle", false, "output the extra cycle flag in dispatch descriptors (default for golang)")
	flags.BoolVar(&opts.NoExtraCycle, "noextracycle", false, "do not output the extra cycle flag in dispatch descriptors (default for rust)")
	flags.BoolVar(&opts.NoFormat, "nofmt", false, "do not format generated Go code")
	flags.BoolVar(&opts.NoWait, "nowait", false, "inspect all slots without waiting for a key press")
}
