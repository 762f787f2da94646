package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcherng/gitweb/internal/domain"
)

// clearEnv blanks every recognized variable so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvLogLevel, EnvLogAppName, EnvRulesFile,
		EnvMergeToolPath, EnvTimeout, EnvBackend,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
	assert.Empty(t, cfg.MergeToolPath)
	assert.Equal(t, domain.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, BackendExec, cfg.Backend)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogAppName, cfg.LogAppName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogAppName, "gitweb-test")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvBackend, BackendGoGit)
	t.Setenv(EnvMergeToolPath, `C:\Tools\Sublime Merge`)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gitweb-test", cfg.LogAppName)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, BackendGoGit, cfg.Backend)
	assert.Equal(t, `C:\Tools\Sublime Merge`, cfg.MergeToolPath)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a duration", value: "three seconds"},
		{name: "bare number", value: "3"},
		{name: "negative", value: "-1s"},
		{name: "zero", value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvTimeout, tt.value)

			_, err := Load()

			assert.ErrorIs(t, err, ErrInvalidTimeout)
		})
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBackend, "subversion")

	_, err := Load()

	require.ErrorIs(t, err, ErrUnknownBackend)
	assert.Contains(t, err.Error(), "subversion")
}

func TestLoad_RulesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - search: "^ssh://git@"
    replace: "https://"
  - search: "^git@corp:"
    replace: "https://git.corp.example.com/"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(EnvRulesFile, path)

	cfg, err := Load()

	require.NoError(t, err)
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, domain.TranslationRule{Search: "^ssh://git@", Replace: "https://"}, cfg.Rules[0])
	assert.Equal(t, "^git@corp:", cfg.Rules[1].Search)
}

func TestLoad_RulesFileNotFound(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRulesFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	assert.ErrorIs(t, err, ErrRulesFileNotFound)
}

func TestLoad_RulesFileInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: ["), 0o644))
	t.Setenv(EnvRulesFile, path)

	_, err := Load()

	assert.ErrorIs(t, err, ErrRulesFileInvalid)
}
