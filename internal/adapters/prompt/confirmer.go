// Package prompt asks the operator to approve destructive steps. On a
// terminal it shows a dialog; piped input falls back to a plain [y/N]
// line prompt. Anything other than an explicit yes declines.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// TerminalConfirmer prompts on the controlling terminal.
type TerminalConfirmer struct {
	in          io.Reader
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// TerminalConfirmerOption configures the confirmer.
type TerminalConfirmerOption func(*TerminalConfirmer)

// WithInput sets the input reader (default: os.Stdin).
func WithInput(r io.Reader) TerminalConfirmerOption {
	return func(c *TerminalConfirmer) {
		c.in = r
	}
}

// WithOutput sets the output writer (default: os.Stdout).
func WithOutput(w io.Writer) TerminalConfirmerOption {
	return func(c *TerminalConfirmer) {
		c.out = w
	}
}

// WithInteractive forces dialog or line mode regardless of TTY detection.
func WithInteractive(enabled bool) TerminalConfirmerOption {
	return func(c *TerminalConfirmer) {
		c.interactive = enabled
	}
}

// NewTerminalConfirmer creates a confirmer, detecting whether stdin and
// stdout are terminals.
func NewTerminalConfirmer(opts ...TerminalConfirmerOption) *TerminalConfirmer {
	c := &TerminalConfirmer{
		in:  os.Stdin,
		out: os.Stdout,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) &&
			isatty.IsTerminal(os.Stdout.Fd()),
	}

	for _, opt := range opts {
		opt(c)
	}

	// One buffered reader for the confirmer's lifetime. A reader per
	// prompt would swallow the answers queued behind the current one
	// when input is piped.
	c.reader = bufio.NewReader(c.in)

	return c
}

// Confirm asks the operator and returns true only on an explicit yes.
func (c *TerminalConfirmer) Confirm(ctx context.Context, prompt string) bool {
	if c.interactive {
		return c.confirmDialog(ctx, prompt)
	}
	return c.confirmLine(ctx, prompt)
}

func (c *TerminalConfirmer) confirmDialog(ctx context.Context, prompt string) bool {
	program := tea.NewProgram(newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.reader),
		tea.WithOutput(c.out),
	)

	final, err := program.Run()
	if err != nil {
		return false
	}

	model, ok := final.(confirmModel)
	if !ok {
		return false
	}
	return model.confirmed
}

func (c *TerminalConfirmer) confirmLine(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

	line, ok := c.ReadLine()
	if !ok {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// ReadLine reads one line from the confirmer's input, without the line
// ending. Free-text questions must go through the same reader as the
// prompts, or answers queued on a pipe get lost between them.
func (c *TerminalConfirmer) ReadLine() (string, bool) {
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// AutoConfirmer approves every prompt. Used for --yes runs.
type AutoConfirmer struct{}

// NewAutoConfirmer creates an AutoConfirmer.
func NewAutoConfirmer() *AutoConfirmer {
	return &AutoConfirmer{}
}

// Confirm always returns true.
func (c *AutoConfirmer) Confirm(context.Context, string) bool {
	return true
}
