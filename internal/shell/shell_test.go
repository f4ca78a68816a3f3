package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want Cmd
	}{
		{"cd ~/ && $SHELL", Cmd{Name: "/bin/zsh", Args: []string{"-c", "cd ~/ && $SHELL"}}},
		{"  ls  ", Cmd{Name: "/bin/zsh", Args: []string{"-c", "ls"}}},
		{"sh", Cmd{Name: "sh", Args: []string{}}},
		{"sh -c cd", Cmd{Name: "sh", Args: []string{"-c", "cd"}}},
		{"sh -c 'echo hi there'", Cmd{Name: "sh", Args: []string{"-c", "echo hi there"}}},
		{"shutdown now", Cmd{Name: "/bin/zsh", Args: []string{"-c", "shutdown now"}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line, "/bin/zsh")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()
	_, err := Parse(" \t", "/bin/sh")
	require.ErrorIs(t, err, ErrEmptyLine)
}

func TestParseDefaultsShell(t *testing.T) {
	t.Parallel()
	got, err := Parse("true", "")
	require.NoError(t, err)
	require.Equal(t, "/bin/sh", got.Name)
	require.Equal(t, "/bin/sh -c true", got.String())
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	r := &Runner{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}

	c, err := Parse("echo hello", "/bin/sh")
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background(), c))
	require.Equal(t, "hello\n", out.String())

	c, err = Parse("exit 3", "/bin/sh")
	require.NoError(t, err)
	err = r.Run(context.Background(), c)
	require.Error(t, err)
	require.Equal(t, 3, ExitCode(err))
	require.Equal(t, 0, ExitCode(nil))
}
