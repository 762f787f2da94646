// Package host adapts the resolver to an editor plugin host's
// command-invocation protocol: an enablement guard, a single background
// worker per invocation, and user-facing notifications for failures.
package host

import (
	"context"
	"fmt"

	"github.com/jfcherng/gitweb/internal/adapters/gitexec"
	"github.com/jfcherng/gitweb/internal/domain"
)

// Logger defines the logging interface required by the host command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// User-facing messages for the three failure points of the open-repo flow.
const (
	msgGitNotFound = "Can't find git binary..."
	msgNoRemoteURI = "Can't determine repo remote URI: %s"
	msgNoWebURL    = "Can't convert remote URI to web URL: %s"
)

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// FindGitBin locates the git executable. Expected to be memoized.
	FindGitBin func() (string, bool)

	// RemoteSourceFactory creates a RemoteSource for the workspace using
	// the located git binary.
	RemoteSourceFactory func(workspace, gitBin string) (domain.RemoteSource, error)

	// Translator converts remote URIs to web URLs.
	Translator domain.Translator

	// Opener opens the final web URL in a browser.
	Opener domain.URLOpener

	// Notifier shows user-facing error messages.
	Notifier domain.Notifier

	// Logger records diagnostics.
	Logger Logger
}

// OpenRepoCommand is the "open git repo on web" host command.
// One invocation spawns at most one worker goroutine; the inputs are
// captured at spawn time and nothing mutable is shared across goroutines.
type OpenRepoCommand struct {
	deps Dependencies
}

// NewOpenRepoCommand creates the command with the given dependencies.
func NewOpenRepoCommand(deps Dependencies) *OpenRepoCommand {
	return &OpenRepoCommand{deps: deps}
}

// Enabled reports whether the command applies to the window: a workspace
// must be derivable and it must live under a git-managed directory.
// No git installation is required for this check.
func (c *OpenRepoCommand) Enabled(win domain.WindowContext) bool {
	workspace, ok := gitexec.DeriveWorkspace(win)
	return ok && gitexec.IsManaged(workspace)
}

// Run resolves the window's repository web URL and opens it in the browser.
// The blocking sequence runs on a background goroutine so the invoking
// (UI-affecting) thread is never blocked. There is no cancellation; the
// worker runs to completion or until the subprocess timeout fires.
func (c *OpenRepoCommand) Run(win domain.WindowContext, remote string) {
	workspace, ok := gitexec.DeriveWorkspace(win)
	if !ok {
		return
	}
	go c.worker(workspace, remote)
}

// worker performs binary discovery, remote resolution, URL translation and
// the open action, reporting each failure point through the Notifier.
func (c *OpenRepoCommand) worker(workspace, remote string) {
	ctx := context.Background()

	gitBin, ok := c.deps.FindGitBin()
	if !ok {
		c.deps.Notifier.ErrorMessage(msgGitNotFound)
		return
	}

	remotes, err := c.deps.RemoteSourceFactory(workspace, gitBin)
	if err != nil {
		c.deps.Logger.Error(ctx, "failed to create remote source", err, map[string]interface{}{
			"workspace": workspace,
		})
		c.deps.Notifier.ErrorMessage(msgGitNotFound)
		return
	}

	uri, err := remotes.RemoteURI(ctx, remote)
	if err != nil {
		c.deps.Logger.Error(ctx, "remote URI query failed", err, map[string]interface{}{
			"workspace": workspace,
			"remote":    remote,
		})
	}
	if uri == "" {
		c.deps.Notifier.ErrorMessage(fmt.Sprintf(msgNoRemoteURI, remote))
		return
	}

	webURL, ok := c.deps.Translator.Translate(uri)
	if !ok {
		c.deps.Notifier.ErrorMessage(fmt.Sprintf(msgNoWebURL, uri))
		return
	}

	if err := c.deps.Opener.Open(webURL); err != nil {
		c.deps.Logger.Error(ctx, "failed to open web URL", err, map[string]interface{}{
			"web_url": webURL,
		})
	}
}
