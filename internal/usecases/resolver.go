// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Logger defines the logging interface required by the resolver.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// URLResolver resolves a workspace's git remote into a browsable web URL.
// It implements the core chain: tracking remote -> remote URI -> web URL.
type URLResolver struct {
	remotes    domain.RemoteSource
	translator domain.Translator
	logger     Logger
}

// NewURLResolver creates a new URLResolver with the given dependencies.
func NewURLResolver(
	remotes domain.RemoteSource,
	translator domain.Translator,
	log Logger,
) *URLResolver {
	return &URLResolver{
		remotes:    remotes,
		translator: translator,
		logger:     log,
	}
}

// Resolve finds the browsable web URL for the workspace's remote.
//
// When input.Remote is empty the tracking remote is used. An undeterminable
// remote URI is domain.ErrNoRemoteURI and an untranslatable URI is
// domain.ErrNoWebURL; process-level failures (such as a git timeout) are
// propagated as-is.
func (r *URLResolver) Resolve(
	ctx context.Context,
	input domain.ResolveInput,
) (*domain.ResolveOutput, error) {
	remote := input.Remote
	if remote == "" {
		tracking, err := r.remotes.TrackingRemote(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query tracking remote: %w", err)
		}
		if tracking == "" {
			r.logger.Warn(ctx, "no tracking remote and no explicit remote", nil)
			return nil, domain.ErrNoRemoteURI
		}
		remote = tracking
	}

	r.logger.Debug(ctx, "resolved remote name", map[string]interface{}{
		"remote": remote,
	})

	uri, err := r.remotes.RemoteURI(ctx, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to query remote URI: %w", err)
	}
	if uri == "" {
		return nil, fmt.Errorf("%w: remote %q", domain.ErrNoRemoteURI, remote)
	}

	webURL, ok := r.translator.Translate(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoWebURL, uri)
	}

	r.logger.Info(ctx, "remote URI translated", map[string]interface{}{
		"remote":     remote,
		"remote_uri": uri,
		"web_url":    webURL,
	})

	return &domain.ResolveOutput{
		Remote:    remote,
		RemoteURI: uri,
		WebURL:    webURL,
	}, nil
}
