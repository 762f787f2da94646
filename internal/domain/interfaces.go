// Package domain defines the core business entities and interfaces for gitweb.
// This package contains no external dependencies and represents the innermost
// layer of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors for git resolution and URL translation.
var (
	// ErrGitNotFound indicates the git executable could not be resolved.
	ErrGitNotFound = errors.New("git binary not found")

	// ErrRepositoryNotFound indicates the workspace is not inside a Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrProcessTimeout indicates a spawned process exceeded its wall-clock budget.
	// The child process is not guaranteed to be reaped when this is returned.
	ErrProcessTimeout = errors.New("process exceeded timeout")

	// ErrNoWorkspace indicates no workspace directory could be derived.
	ErrNoWorkspace = errors.New("no workspace to run git in")

	// ErrNoRemoteURI indicates no remote URI could be determined for the repository.
	ErrNoRemoteURI = errors.New("could not determine the repo remote URI")

	// ErrNoWebURL indicates the remote URI has no known browsable form.
	ErrNoWebURL = errors.New("could not convert the remote URI to a web URL")
)

// GitCommandError reports a git invocation that ran but exited non-zero.
// Most queries absorb it into an absent result; only Client.Run surfaces it.
type GitCommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *GitCommandError) Error() string {
	return fmt.Sprintf("`%s` exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// RemoteSource answers remote queries for a single workspace.
//
// Both queries treat "git ran but said no" as a normal negative result:
// an empty string with a nil error. A non-nil error is reserved for
// process-level failures such as a timeout. This deliberately makes
// "no upstream configured" indistinguishable from "command failed".
type RemoteSource interface {
	// TrackingRemote returns the remote the current branch pulls from,
	// or "" for a detached HEAD or a branch with no configured upstream.
	TrackingRemote(ctx context.Context) (string, error)

	// RemoteURI returns the raw URI stored for the named remote.
	// An empty remote name falls back to the tracking remote.
	RemoteURI(ctx context.Context, remote string) (string, error)
}

// Translator converts a git remote URI into a browsable web URL.
// The boolean is false when the URI has no known browsable form; that is
// a legitimate outcome, not an error.
type Translator interface {
	Translate(uri string) (string, bool)
}

// URLOpener opens a fully-formed web URL in the user's default browser.
type URLOpener interface {
	Open(url string) error
}

// OutputWriter writes the resolved web URL to an output destination.
type OutputWriter interface {
	WriteWebURL(url string) error
}

// Notifier is the user-facing error surface of an editor host.
// Implementations typically show a modal message.
type Notifier interface {
	ErrorMessage(msg string)
}

// WindowContext is the slice of an editor window the workspace resolver needs.
type WindowContext interface {
	// ActiveFilePath returns the on-disk path of the active file, if any.
	ActiveFilePath() (string, bool)

	// OpenFolders returns the window's open folders in order.
	OpenFolders() []string
}

// Resolver resolves a workspace's remote into a browsable web URL.
type Resolver interface {
	Resolve(ctx context.Context, input ResolveInput) (*ResolveOutput, error)
}
