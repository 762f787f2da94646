// Package domain defines the core business entities and interfaces for gitweb.
package domain

import (
	"fmt"
	"time"
)

// CommandResult is the outcome of one external process execution.
// Stdout and Stderr are right-trimmed of trailing whitespace; a missing
// exit status is normalized to 0. The value is never retained beyond the
// call that produced it.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// GitVersion is a parsed `git version` triple.
type GitVersion struct {
	Major int
	Minor int
	Patch int
}

// String renders the version as "major.minor.patch".
func (v GitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// TranslationRule is a user-supplied search/replace pair applied to remote
// URIs before the built-in translation logic. Rules are ordered; the first
// rule whose search pattern matches at the start of the URI wins.
type TranslationRule struct {
	// Search is a regular expression matched against the start of the URI.
	Search string `yaml:"search"`

	// Replace is the substitution template ($1, $2, ... for capture groups).
	Replace string `yaml:"replace"`
}

// ResolveInput contains the parameters for a web-URL resolution.
// The workspace path is provided separately when creating the RemoteSource.
type ResolveInput struct {
	// Remote is an explicit remote name. When empty, the tracking remote
	// of the current branch is used.
	Remote string
}

// ResolveOutput contains the result of a successful web-URL resolution.
type ResolveOutput struct {
	// Remote is the remote name the URI was read from.
	// Empty when an explicit remote was not given and the URI came from
	// the tracking-remote fallback inside the RemoteSource.
	Remote string

	// RemoteURI is the raw URI git stores for the remote.
	RemoteURI string

	// WebURL is the browsable HTTPS form of RemoteURI.
	WebURL string
}

// DefaultTimeout is the wall-clock budget for a single git invocation.
const DefaultTimeout = 3 * time.Second
