// Package gogit provides a domain.RemoteSource backed by go-git/v5.
// It reads remote configuration straight from the repository on disk, so it
// works without any git binary installed. It is selected with the "gogit"
// backend; the exec backend remains the default.
package gogit

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Logger defines the logging interface for the gogit adapter.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// RemoteSource implements domain.RemoteSource using go-git/v5.
type RemoteSource struct {
	repo      *git.Repository
	workspace string
	logger    Logger
}

// NewRemoteSource opens the repository containing workspace, searching
// upward for the `.git` directory the way git itself does.
// Returns domain.ErrRepositoryNotFound if none is found.
func NewRemoteSource(workspace string, log Logger) (*RemoteSource, error) {
	repo, err := git.PlainOpenWithOptions(workspace, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, workspace)
	}

	return &RemoteSource{
		repo:      repo,
		workspace: workspace,
		logger:    log,
	}, nil
}

// TrackingRemote returns the remote the current branch is configured to pull
// from. Detached HEAD, an unborn branch, or a branch with no upstream all
// yield the empty non-error result.
func (s *RemoteSource) TrackingRemote(ctx context.Context) (string, error) {
	head, err := s.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		s.logger.Debug(ctx, "no branch at HEAD", map[string]interface{}{
			"workspace": s.workspace,
		})
		return "", nil
	}

	branch, err := s.repo.Branch(head.Name().Short())
	if err != nil || branch.Remote == "" {
		s.logger.Debug(ctx, "branch has no upstream", map[string]interface{}{
			"branch": head.Name().Short(),
		})
		return "", nil
	}
	return branch.Remote, nil
}

// RemoteURI returns the first URI configured for the named remote.
// An empty remote name falls back to the tracking remote.
func (s *RemoteSource) RemoteURI(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		tracking, err := s.TrackingRemote(ctx)
		if err != nil {
			return "", err
		}
		if tracking == "" {
			return "", nil
		}
		remote = tracking
	}

	r, err := s.repo.Remote(remote)
	if err != nil {
		s.logger.Debug(ctx, "remote not configured", map[string]interface{}{
			"remote": remote,
		})
		return "", nil
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}
