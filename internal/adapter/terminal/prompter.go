package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"user-console/pkg/security"
)

// Prompter shows alerts and y/N confirmations on the terminal.
type Prompter struct {
	in  *LineReader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in
func NewPrompter(in *LineReader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Alert prints message
func (p *Prompter) Alert(message string) {
	fmt.Fprintf(p.out, "! %s\n", security.SanitizeLine(message))
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is a no, and so
// is end of input or a cancelled ctx.
func (p *Prompter) Confirm(ctx context.Context, message string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", security.SanitizeLine(message))

	answer, err := p.in.ReadLine(ctx)
	if err != nil {
		fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
