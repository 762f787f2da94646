package gitexec

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcherng/gitweb/internal/domain"
)

func TestNewExecRunner_DefaultTimeout(t *testing.T) {
	r := NewExecRunner(0)

	assert.Equal(t, domain.DefaultTimeout, r.timeout)
}

func TestExecRunner_CapturesTrimmedOutput(t *testing.T) {
	r := NewExecRunner(10 * time.Second)

	result, err := r.Run(context.Background(), "git", []string{"version"}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "git version")
	assert.Equal(t, strings.TrimRight(result.Stdout, " \t\r\n"), result.Stdout,
		"stdout must be right-trimmed")
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	r := NewExecRunner(10 * time.Second)

	result, err := r.Run(context.Background(), "git", []string{"--no-such-flag"}, t.TempDir())

	require.NoError(t, err)
	assert.NotEqual(t, 0, result.ExitCode)
	assert.NotEmpty(t, result.Stderr)
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	r := NewExecRunner(10 * time.Second)

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-4f3a", nil, t.TempDir())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProcessTimeout)
}

func TestExecRunner_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the sleep utility")
	}

	r := NewExecRunner(100 * time.Millisecond)

	_, err := r.Run(context.Background(), "sleep", []string{"5"}, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrProcessTimeout)
}
