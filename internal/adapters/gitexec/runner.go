// Package gitexec provides adapters for interacting with local Git
// repositories by spawning the system git binary. It implements the
// domain.RemoteSource interface and the binary discovery and workspace
// resolution that back it.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Runner executes an external executable with arguments in a working
// directory and captures its output. This interface enables dependency
// injection and testability.
type Runner interface {
	Run(ctx context.Context, name string, args []string, dir string) (domain.CommandResult, error)
}

// ExecRunner runs commands via os/exec with a wall-clock timeout per call.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner with the given timeout.
// A non-positive timeout falls back to domain.DefaultTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &ExecRunner{timeout: timeout}
}

// Run spawns name with args in dir and captures its stdout and stderr as
// UTF-8 text, right-trimmed of trailing whitespace. A missing exit status
// is normalized to 0. On timeout it returns domain.ErrProcessTimeout; the
// child is not guaranteed to be reaped by the time Run returns.
func (r *ExecRunner) Run(
	ctx context.Context,
	name string,
	args []string,
	dir string,
) (domain.CommandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Keep a console window from flashing up on GUI hosts.
	hideConsoleWindow(cmd)

	err := cmd.Run()
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return domain.CommandResult{}, fmt.Errorf("%w: %s %s",
			domain.ErrProcessTimeout, name, strings.Join(args, " "))
	}

	result := domain.CommandResult{
		Stdout: strings.TrimRight(stdout.String(), " \t\r\n\v\f"),
		Stderr: strings.TrimRight(stderr.String(), " \t\r\n\v\f"),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// exit code 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return domain.CommandResult{}, fmt.Errorf("failed to run %s: %w", name, err)
	}

	// A vanished exit status (signal termination on some platforms) reports
	// as a negative code; treat it the same as a clean zero.
	if result.ExitCode < 0 {
		result.ExitCode = 0
	}

	return result, nil
}
