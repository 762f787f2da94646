// Package cmd provides the CLI commands for gitweb.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfcherng/gitweb/internal/adapters/gitexec"
	"github.com/jfcherng/gitweb/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the commands.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// RemoteSourceFactory creates a RemoteSource for the workspace using
	// the configured backend.
	RemoteSourceFactory func(cfg *AppConfig, workspace string, log Logger) (domain.RemoteSource, error)

	// TranslatorFactory compiles the configured rules into a Translator.
	TranslatorFactory func(cfg *AppConfig) (domain.Translator, error)

	// ResolverFactory creates a Resolver with the given dependencies.
	ResolverFactory func(
		remotes domain.RemoteSource,
		translator domain.Translator,
		log Logger,
	) domain.Resolver

	// OutputWriterFactory creates an OutputWriter.
	OutputWriterFactory func() domain.OutputWriter

	// URLOpenerFactory creates the browser opener.
	URLOpenerFactory func() domain.URLOpener

	// GitVersionQuerier resolves the git binary and queries its version
	// for the `version` subcommand.
	GitVersionQuerier func(ctx context.Context, cfg *AppConfig, workspace string) (string, *domain.GitVersion, error)

	// Stdout is the writer for standard output (for the web URL).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Rules are the ordered user-defined translation rules.
	Rules []domain.TranslationRule

	// MergeToolPath is the optional companion merge-tool install directory.
	MergeToolPath string

	// Timeout is the wall-clock budget for one git invocation.
	Timeout time.Duration

	// Backend selects how remotes are queried ("exec" or "gogit").
	Backend string

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// Command-line flags.
var (
	remoteName string
	printOnly  bool
	backend    string
	verbose    bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for gitweb.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitweb [path]",
		Short: "Open a git repository's remote on the web",
		Long: `gitweb resolves a filesystem location into its repository's browsable web URL.

It finds the repository containing the given path (the current directory by
default), asks git for the tracking remote of the current branch and that
remote's URI, translates the URI into an HTTPS web URL, and opens it in the
default browser.

User-defined translation rules (a YAML file named by GITWEB_RULES) are applied
before the built-in SSH and HTTP handling; the first matching rule wins.

Examples:
  # Open the current repository's remote in the browser
  gitweb

  # Resolve a specific checkout
  gitweb /path/to/repo

  # Use a specific remote instead of the tracking remote
  gitweb --remote upstream

  # Print the URL instead of opening it
  gitweb -p

  # Resolve without spawning a git binary
  gitweb --backend gogit`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&remoteName, "remote", "r", "",
		"Remote to resolve (defaults to the tracking remote)")
	rootCmd.Flags().BoolVarP(&printOnly, "print", "p", false,
		"Print the web URL instead of opening a browser")
	rootCmd.Flags().StringVar(&backend, "backend", "",
		"Git backend: exec (spawn git) or gogit (read the repository directly)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	rootCmd.AddCommand(newVersionCmd(deps))

	return rootCmd
}

// runOpen executes the resolve-and-open logic with injected dependencies.
func runOpen(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Determine the workspace path
	workspace := "."
	if len(args) > 0 {
		workspace = args[0]
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	log.Info(ctx, "starting gitweb", map[string]interface{}{
		"path":    workspace,
		"remote":  remoteName,
		"print":   printOnly,
		"verbose": verbose,
	})

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}
	if backend != "" {
		cfg.Backend = backend
	}

	// Bail out early when the path is not git-managed at all; this check
	// needs no git installation.
	repoRoot, ok := gitexec.FindRepoRoot(workspace)
	if !ok {
		return fmt.Errorf("not a git repository: %s", workspace)
	}
	log.Debug(ctx, "found repository root", map[string]interface{}{
		"repo_root": repoRoot,
	})

	// Initialize the remote source for the configured backend
	remotes, err := deps.RemoteSourceFactory(cfg, workspace, log)
	if err != nil {
		log.Error(ctx, "failed to create remote source", err, map[string]interface{}{
			"backend": cfg.Backend,
		})
		if errors.Is(err, domain.ErrGitNotFound) {
			return fmt.Errorf("can't find git binary; is git installed?")
		}
		return err
	}

	// Compile translation rules
	translator, err := deps.TranslatorFactory(cfg)
	if err != nil {
		log.Error(ctx, "failed to compile translation rules", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	// Create resolver and resolve the web URL
	resolver := deps.ResolverFactory(remotes, translator, log)
	result, err := resolver.Resolve(ctx, domain.ResolveInput{
		Remote: remoteName,
	})
	if err != nil {
		log.Error(ctx, "failed to resolve web URL", err, nil)
		if errors.Is(err, domain.ErrNoRemoteURI) {
			return fmt.Errorf("can't determine repo remote URI: %q", remoteName)
		}
		if errors.Is(err, domain.ErrNoWebURL) {
			return err
		}
		if errors.Is(err, domain.ErrProcessTimeout) {
			return fmt.Errorf("git took too long to answer: %w", err)
		}
		return err
	}

	if printOnly {
		writer := deps.OutputWriterFactory()
		if err := writer.WriteWebURL(result.WebURL); err != nil {
			log.Error(ctx, "failed to write output", err, nil)
			return fmt.Errorf("output error: %w", err)
		}
	} else {
		opener := deps.URLOpenerFactory()
		if err := opener.Open(result.WebURL); err != nil {
			log.Error(ctx, "failed to open browser", err, nil)
			return err
		}
	}

	log.Info(ctx, "web URL resolved", map[string]interface{}{
		"remote":     result.Remote,
		"remote_uri": result.RemoteURI,
		"web_url":    result.WebURL,
		"repo_root":  repoRoot,
	})

	return nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		return
	}
}
