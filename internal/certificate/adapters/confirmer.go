package adapters

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/ports"
)

// AutoConfirmer answers every confirmation with a fixed decision.
type AutoConfirmer struct {
	Accept bool
}

func (a AutoConfirmer) Confirm(ctx context.Context, _ models.Confirmation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return a.Accept, nil
}

// FuncConfirmer adapts a function to the Confirmer port.
type FuncConfirmer func(ctx context.Context, c models.Confirmation) (bool, error)

func (f FuncConfirmer) Confirm(ctx context.Context, c models.Confirmation) (bool, error) {
	return f(ctx, c)
}

type decisionKey struct{}

// WithDecision attaches the caller's confirmation decision to ctx.
func WithDecision(ctx context.Context, accept bool) context.Context {
	return context.WithValue(ctx, decisionKey{}, accept)
}

// ContextConfirmer reads the decision placed on the context by WithDecision.
// Without one it asks Fallback, or declines when Fallback is nil.
type ContextConfirmer struct {
	Fallback ports.Confirmer
}

func (c ContextConfirmer) Confirm(ctx context.Context, confirmation models.Confirmation) (bool, error) {
	if accept, ok := ctx.Value(decisionKey{}).(bool); ok {
		return accept, nil
	}
	if c.Fallback != nil {
		return c.Fallback.Confirm(ctx, confirmation)
	}
	return false, nil
}

// TerminalConfirmer prompts on out and reads a y/N answer from in.
// A single goroutine owns in for the confirmer's lifetime; callers sharing the
// terminal read their own lines through ReadLine.
type TerminalConfirmer struct {
	out   io.Writer
	lines chan string
	err   error // set before lines is closed
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	t := &TerminalConfirmer{out: out, lines: make(chan string)}
	go t.read(bufio.NewReader(in))
	return t
}

// read hands each line to whichever ReadLine receives it. Sends block, so at
// most one line is read ahead of its consumer and none is lost to a caller
// that stopped waiting.
func (t *TerminalConfirmer) read(in *bufio.Reader) {
	for {
		line, err := in.ReadString('\n')
		if line != "" {
			t.lines <- line
		}
		if err != nil {
			t.err = err
			close(t.lines)
			return
		}
	}
}

// ReadLine returns the next line typed on the terminal. It returns the read
// error, usually io.EOF, once input is exhausted.
func (t *TerminalConfirmer) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", t.err
		}
		return line, nil
	}
}

func (t *TerminalConfirmer) Confirm(ctx context.Context, c models.Confirmation) (bool, error) {
	fmt.Fprintf(t.out, "\nConfirm %s of %s on %s\n  estimated gas fee: %s ETH\nApprove? [y/N]: ",
		c.Action, c.Subject, c.Network, c.GasFee)

	line, err := t.ReadLine(ctx)
	switch {
	case errors.Is(err, io.EOF):
		return false, nil
	case err != nil:
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
