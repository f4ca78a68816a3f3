// Package shell turns a stored command line into a process and runs it in the foreground.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ErrEmptyLine is returned for a blank command line
var ErrEmptyLine = errors.New("command line is empty")

// Cmd is a parsed command ready to exec
type Cmd struct {
	Name string
	Args []string
}

func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Parse decides how line is started. Lines that begin with the word "sh" are split
// shell-style and exec'd as written, so "sh" alone opens a plain shell and
// "sh -c 'echo hi'" keeps its quoting. Anything else runs as `<shell> -c <line>`.
func Parse(line, shellPath string) (Cmd, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Cmd{}, ErrEmptyLine
	}
	if trimmed == "sh" || strings.HasPrefix(trimmed, "sh ") || strings.HasPrefix(trimmed, "sh\t") {
		words, err := shlex.Split(trimmed)
		if err != nil {
			return Cmd{}, fmt.Errorf("split %q: %w", trimmed, err)
		}
		return Cmd{Name: words[0], Args: words[1:]}, nil
	}
	if shellPath == "" {
		shellPath = "/bin/sh"
	}
	return Cmd{Name: shellPath, Args: []string{"-c", trimmed}}, nil
}

// Runner starts commands attached to the given streams
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a runner attached to the current terminal
func NewRunner() *Runner {
	return &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts c and waits for it. A non-zero exit is reported as *exec.ExitError.
func (r *Runner) Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", c, err)
	}
	return nil
}

// ExitCode extracts the process exit status from a Run error, or 1 for other failures
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
