// Package config provides configuration loading for the gitweb application.
// Settings come from environment variables with defaults; user-defined
// URI-to-URL translation rules come from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Environment variable names.
const (
	// EnvLogLevel is the log level (debug, info, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"

	// EnvRulesFile is the path to the YAML translation-rules file.
	EnvRulesFile = "GITWEB_RULES"

	// EnvMergeToolPath is the install directory of a companion merge tool
	// whose bundled git may be used when none is on PATH (Windows only).
	EnvMergeToolPath = "GITWEB_MERGE_TOOL_PATH"

	// EnvTimeout is the per-git-invocation wall-clock budget as a Go
	// duration string, e.g. "3s" or "500ms".
	EnvTimeout = "GITWEB_TIMEOUT"

	// EnvBackend selects how remotes are queried: "exec" spawns the git
	// binary, "gogit" reads the repository with go-git.
	EnvBackend = "GITWEB_BACKEND"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogAppName = "gitweb"

	// BackendExec queries remotes by spawning the git binary.
	BackendExec = "exec"

	// BackendGoGit queries remotes by reading the repository with go-git.
	BackendGoGit = "gogit"
)

// Configuration errors.
var (
	// ErrRulesFileNotFound indicates the configured rules file does not exist.
	ErrRulesFileNotFound = errors.New("translation rules file not found")

	// ErrRulesFileInvalid indicates the rules file is not valid YAML.
	ErrRulesFileInvalid = errors.New("translation rules file is not valid YAML")

	// ErrInvalidTimeout indicates GITWEB_TIMEOUT is not a valid duration.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrUnknownBackend indicates GITWEB_BACKEND names no known backend.
	ErrUnknownBackend = errors.New("unknown git backend")
)

// Config holds all application configuration.
type Config struct {
	// Rules are the ordered user-defined URI-to-URL translation rules.
	Rules []domain.TranslationRule

	// MergeToolPath is the optional companion merge-tool install directory.
	MergeToolPath string

	// Timeout is the wall-clock budget for one git invocation.
	Timeout time.Duration

	// Backend is BackendExec or BackendGoGit.
	Backend string

	// LogLevel is the logging level (debug, info, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string
}

// rulesFile is the on-disk shape of the translation-rules file:
//
//	rules:
//	  - search: "^ssh://git@"
//	    replace: "https://"
type rulesFile struct {
	Rules []domain.TranslationRule `yaml:"rules"`
}

// Load loads the application configuration from environment variables and
// the optional rules file. Absent variables fall back to defaults; only a
// present-but-invalid value is an error.
func Load() (*Config, error) {
	cfg := &Config{
		MergeToolPath: os.Getenv(EnvMergeToolPath),
		Timeout:       domain.DefaultTimeout,
		Backend:       BackendExec,
		LogLevel:      DefaultLogLevel,
		LogAppName:    DefaultLogAppName,
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if name := os.Getenv(EnvLogAppName); name != "" {
		cfg.LogAppName = name
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
		}
		cfg.Timeout = timeout
	}

	if backend := os.Getenv(EnvBackend); backend != "" {
		if backend != BackendExec && backend != BackendGoGit {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
		}
		cfg.Backend = backend
	}

	if path := os.Getenv(EnvRulesFile); path != "" {
		rules, err := loadRulesFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}

	return cfg, nil
}

// loadRulesFromFile reads and parses the YAML translation-rules file.
func loadRulesFromFile(path string) ([]domain.TranslationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRulesFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read translation rules: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRulesFileInvalid, err)
	}

	return file.Rules, nil
}
