// Package inspect implements a printer that walks all opcode slots for manual
// review and waits for an acknowledgment after every slot.
package inspect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/opgen/internal/naming"
	"github.com/retroenv/opgen/internal/opcode"
	"golang.org/x/term"
)

const separator = "==============================================="

// Acknowledger waits for the operator after a slot was printed. It returns
// false if the inspection should stop.
type Acknowledger interface {
	Wait() (bool, error)
}

// Printer prints all slots of an opcode table.
type Printer struct {
	out io.Writer
	ack Acknowledger
}

// New creates a new printer. A nil acknowledger prints all slots without
// waiting.
func New(out io.Writer, ack Acknowledger) *Printer {
	return &Printer{
		out: out,
		ack: ack,
	}
}

// Print walks all 256 slots in table traversal order.
func (p *Printer) Print(table *opcode.Table) error {
	for b := range opcode.Slots {
		if err := p.printSlot(table, uint8(b)); err != nil {
			return err
		}

		if p.ack == nil {
			continue
		}
		cont, err := p.ack.Wait()
		if err != nil {
			return fmt.Errorf("waiting for acknowledgment: %w", err)
		}
		if !cont {
			return nil
		}
	}
	return nil
}

func (p *Printer) printSlot(table *opcode.Table, b uint8) error {
	record, ok := table.Get(b)
	if !ok {
		if _, err := fmt.Fprintf(p.out, "%s\n$%02X undefined\n\n\n", separator, b); err != nil {
			return fmt.Errorf("writing slot: %w", err)
		}
		return nil
	}

	token := record.Addressing.Token()
	if token == "" {
		return fmt.Errorf("opcode %s: %w %d", record.Hex(), naming.ErrUnknownAddressingMode, int(record.Addressing))
	}
	cycles := fmt.Sprintf("%d", record.Cycles)
	if record.ExtraCycle {
		cycles += "*"
	}

	if _, err := fmt.Fprintf(p.out, "%s\n$%02X %s\n%s\n%d  %s\n",
		separator, b, record.Mnemonic, token, record.Bytes, cycles); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	return nil
}

// LineAcknowledger waits for a line of input. End of input stops the
// inspection.
type LineAcknowledger struct {
	reader *bufio.Reader
}

// NewLineAcknowledger returns an acknowledger that reads lines from r.
func NewLineAcknowledger(r io.Reader) *LineAcknowledger {
	return &LineAcknowledger{reader: bufio.NewReader(r)}
}

// Wait reads the next line, the input "q" stops the inspection.
func (a *LineAcknowledger) Wait() (bool, error) {
	line, err := a.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return line != "q\n" && line != "q\r\n", nil
}

// KeyAcknowledger waits for a single key press on a terminal.
type KeyAcknowledger struct {
	file *os.File
}

// NewKeyAcknowledger returns an acknowledger reading key presses from the
// terminal file.
func NewKeyAcknowledger(file *os.File) *KeyAcknowledger {
	return &KeyAcknowledger{file: file}
}

// Wait switches the terminal to raw mode and reads one key. The keys q,
// escape and Ctrl+C stop the inspection.
func (a *KeyAcknowledger) Wait() (bool, error) {
	fd := int(a.file.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	key := make([]byte, 1)
	if _, err := a.file.Read(key); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading key: %w", err)
	}

	switch key[0] {
	case 'q', 'Q', 0x1b, 0x03:
		return false, nil
	default:
		return true, nil
	}
}

// NewAcknowledger returns a key acknowledger if the file is a terminal and a
// line acknowledger otherwise.
// nolint: ireturn
func NewAcknowledger(file *os.File) Acknowledger {
	if term.IsTerminal(int(file.Fd())) {
		return NewKeyAcknowledger(file)
	}
	return NewLineAcknowledger(file)
}
