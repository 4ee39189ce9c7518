package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Command runs a single external command and captures its stdout verbatim.
type Command struct {
	path string
	args []string
}

// NewCommand builds a probe for the given command line.
func NewCommand(path string, args ...string) *Command {
	return &Command{path: path, args: args}
}

func (c *Command) Run(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, c.args...)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s: %w", c.path, err)
	}
	return out.String(), nil
}

// Sequence runs several probes in order and joins their outputs with a
// blank line. Errors are collected; partial output is always returned.
type Sequence struct {
	probes []Probe
}

// NewSequence builds a probe that concatenates the outputs of ps.
func NewSequence(ps ...Probe) *Sequence {
	return &Sequence{probes: ps}
}

func (s *Sequence) Run(ctx context.Context) (string, error) {
	var out bytes.Buffer
	var firstErr error

	for _, p := range s.probes {
		text, err := p.Run(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if text == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(text)
	}
	return out.String(), firstErr
}
