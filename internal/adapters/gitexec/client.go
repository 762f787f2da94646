package gitexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Logger defines the logging interface for the gitexec adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// Client is a thin wrapper over the git command line, bound to one workspace.
// It is created per invocation, validated eagerly, and stateless afterwards.
type Client struct {
	gitBin    string
	workspace string
	runner    Runner
	logger    Logger
}

// NewClient creates a Client for the given workspace and git binary.
// A bare binary name is resolved through the OS executable search; failure
// to resolve is domain.ErrGitNotFound. A file workspace is replaced by its
// containing directory.
func NewClient(workspace, gitBin string, timeout time.Duration, log Logger) (*Client, error) {
	if gitBin == "" {
		gitBin = "git"
	}
	resolved, err := exec.LookPath(gitBin)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot resolve %q", domain.ErrGitNotFound, gitBin)
	}

	return &Client{
		gitBin:    resolved,
		workspace: NormalizeWorkspace(workspace),
		runner:    NewExecRunner(timeout),
		logger:    log,
	}, nil
}

// Run executes git with args and returns its stdout.
// A non-zero exit is reported as *domain.GitCommandError.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	result, err := c.RunDetailed(ctx, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &domain.GitCommandError{
			Command:  strings.Join(append([]string{c.gitBin}, args...), " "),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}
	return result.Stdout, nil
}

// RunDetailed executes git with args and passes the raw result through.
// It never errors on a non-zero exit; only process-level failures such as
// domain.ErrProcessTimeout are reported.
func (c *Client) RunDetailed(ctx context.Context, args ...string) (domain.CommandResult, error) {
	return c.runner.Run(ctx, c.gitBin, args, c.workspace)
}

// TrackingRemote returns the remote the current branch is configured to pull
// from, e.g. "origin". An empty result with a nil error is the expected
// signal for a detached HEAD or a branch with no upstream.
func (c *Client) TrackingRemote(ctx context.Context) (string, error) {
	// upstream will be something like "refs/remotes/origin/master"
	upstream, err := c.Run(ctx, "rev-parse", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		var cmdErr *domain.GitCommandError
		if errors.As(err, &cmdErr) {
			c.logger.Debug(ctx, "no tracking remote", map[string]interface{}{
				"workspace": c.workspace,
				"exit_code": cmdErr.ExitCode,
			})
			return "", nil
		}
		return "", err
	}

	parts := strings.SplitN(upstream, "/", 4)
	if len(parts) < 4 || parts[0] != "refs" || parts[1] != "remotes" {
		c.logger.Warn(ctx, "unexpected upstream ref shape", map[string]interface{}{
			"upstream": upstream,
		})
		return "", nil
	}
	return parts[2], nil
}

// versionPattern extracts the first N.N.N triple anywhere in `git version`
// output, which varies across platforms (e.g. "git version 2.39.1.windows.1").
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Version returns the git binary's parsed version, or nil when the command
// fails or its output carries no recognizable version triple.
func (c *Client) Version(ctx context.Context) (*domain.GitVersion, error) {
	out, err := c.Run(ctx, "version")
	if err != nil {
		var cmdErr *domain.GitCommandError
		if errors.As(err, &cmdErr) {
			return nil, nil
		}
		return nil, err
	}

	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return nil, nil
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return &domain.GitVersion{Major: major, Minor: minor, Patch: patch}, nil
}

// RemoteURI returns the raw URI stored for the named remote. An empty remote
// name falls back to the tracking remote. Command failures are absorbed into
// an empty result; "no upstream configured" and "command failed" are the
// same non-error outcome for callers.
func (c *Client) RemoteURI(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		tracking, err := c.TrackingRemote(ctx)
		if err != nil {
			return "", err
		}
		if tracking == "" {
			return "", nil
		}
		remote = tracking
	}

	uri, err := c.Run(ctx, "remote", "get-url", remote)
	if err != nil {
		var cmdErr *domain.GitCommandError
		if errors.As(err, &cmdErr) {
			c.logger.Debug(ctx, "no URI for remote", map[string]interface{}{
				"remote":    remote,
				"exit_code": cmdErr.ExitCode,
			})
			return "", nil
		}
		return "", err
	}
	return uri, nil
}

// Workspace returns the directory git commands run in.
func (c *Client) Workspace() string {
	return c.workspace
}

// GitBin returns the resolved git executable path.
func (c *Client) GitBin() string {
	return c.gitBin
}
