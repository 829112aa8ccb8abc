package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Confirmer asks the user yes/no questions. Destructive operations gate
// on it before doing anything irreversible.
type Confirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConfirmer creates a Confirmer reading from in and prompting on out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the question and waits for a y/N answer. Anything other
// than an explicit yes counts as no. The read respects context
// cancellation so an interrupt aborts cleanly.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", PromptStyle.Render(question))

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		line, err := c.in.ReadString('\n')
		resultCh <- result{value: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.value == "" {
			return false, res.err
		}
		answer := strings.ToLower(strings.TrimSpace(res.value))
		return answer == "y" || answer == "yes", nil
	}
}
