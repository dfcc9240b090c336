package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound reports that a command's binary is not on PATH.
var ErrNotFound = errors.New("executable not found")

// Cmd describes one invocation of an external program.
type Cmd struct {
	Dir   string
	Stdin string
	Name  string
	Args  []string
}

func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Available reports whether name resolves on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes c and returns its combined output. On failure the error
// carries the command line and the trimmed output.
func Run(ctx context.Context, c Cmd) (string, error) {
	if !Available(c.Name) {
		return "", fmt.Errorf("%s: %w", c.Name, ErrNotFound)
	}
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("command failed: %s: %w (%s)", c, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
