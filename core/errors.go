package core

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrManifestParse matches every *ParseError.
var ErrManifestParse = errors.New("malformed manifest")

// CommandError reports an external command that could not start or exited non-zero.
type CommandError struct {
	Dir  string
	Args []string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the child's exit status, or -1 if it never ran to completion.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ParseError reports a manifest that is not a JSON object of the expected shape.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrManifestParse, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrManifestParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrManifestParse }

func wrapPermission(err error, target string) error {
	if os.IsPermission(err) {
		return fmt.Errorf("permission denied: %s: %w", target, err)
	}
	return err
}
