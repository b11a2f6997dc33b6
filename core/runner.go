package core

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/prithwish249/create-vite-tailwind/internal/logger"
)

// Runner executes an external program in dir and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs programs directly, without a shell, so arguments such as the
// project name are never reinterpreted.
type ExecRunner struct {
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debug("[DEBUG] Running command in %s: %s\n", dir, strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return &CommandError{Dir: dir, Args: append([]string{name}, args...), Err: err}
	}
	return nil
}
