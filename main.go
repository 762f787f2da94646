// Package main is the entry point for the gitweb CLI application.
// gitweb resolves a filesystem location into its git repository's browsable
// web URL and opens it in the default browser.
package main

import (
	"context"
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/jfcherng/gitweb/cmd"
	"github.com/jfcherng/gitweb/internal/adapters/browser"
	"github.com/jfcherng/gitweb/internal/adapters/gitexec"
	"github.com/jfcherng/gitweb/internal/adapters/gogit"
	logadapter "github.com/jfcherng/gitweb/internal/adapters/logger"
	"github.com/jfcherng/gitweb/internal/adapters/output"
	"github.com/jfcherng/gitweb/internal/domain"
	"github.com/jfcherng/gitweb/internal/infrastructure/config"
	"github.com/jfcherng/gitweb/internal/translate"
	"github.com/jfcherng/gitweb/internal/usecases"
)

func main() {
	// Create a single shared logger instance for the application
	zapLog := logger.NewZapLoggerFromConfig()
	adapter := logadapter.NewZapAdapter(zapLog)

	// Git binary discovery is memoized for the process lifetime; one
	// Locator is shared by every factory that needs it.
	var locator *gitexec.Locator
	findGitBin := func(mergeToolPath string) (string, bool) {
		if locator == nil {
			locator = gitexec.NewLocator(mergeToolPath)
		}
		return locator.Find()
	}

	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				Rules:         cfg.Rules,
				MergeToolPath: cfg.MergeToolPath,
				Timeout:       cfg.Timeout,
				Backend:       cfg.Backend,
				LogLevel:      cfg.LogLevel,
				LogAppName:    cfg.LogAppName,
			}, nil
		},

		RemoteSourceFactory: func(cfg *cmd.AppConfig, workspace string, _ cmd.Logger) (domain.RemoteSource, error) {
			scoped := logadapter.WithFields(adapter, map[string]any{"backend": cfg.Backend})
			if cfg.Backend == config.BackendGoGit {
				return gogit.NewRemoteSource(workspace, scoped)
			}
			gitBin, ok := findGitBin(cfg.MergeToolPath)
			if !ok {
				return nil, domain.ErrGitNotFound
			}
			return gitexec.NewClient(workspace, gitBin, cfg.Timeout, scoped)
		},

		TranslatorFactory: func(cfg *cmd.AppConfig) (domain.Translator, error) {
			rules, err := translate.CompileRules(cfg.Rules)
			if err != nil {
				return nil, err
			}
			return translate.NewTranslator(rules), nil
		},

		ResolverFactory: func(
			remotes domain.RemoteSource,
			translator domain.Translator,
			_ cmd.Logger,
		) domain.Resolver {
			return usecases.NewURLResolver(remotes, translator, adapter)
		},

		OutputWriterFactory: func() domain.OutputWriter {
			return output.NewWriter()
		},

		URLOpenerFactory: func() domain.URLOpener {
			return browser.NewOpener()
		},

		GitVersionQuerier: func(ctx context.Context, cfg *cmd.AppConfig, workspace string) (string, *domain.GitVersion, error) {
			gitBin, ok := findGitBin(cfg.MergeToolPath)
			if !ok {
				return "", nil, domain.ErrGitNotFound
			}
			client, err := gitexec.NewClient(workspace, gitBin, cfg.Timeout, adapter)
			if err != nil {
				return "", nil, err
			}
			version, err := client.Version(ctx)
			if err != nil {
				return gitBin, nil, err
			}
			return gitBin, version, nil
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
