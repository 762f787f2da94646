package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcherng/gitweb/internal/domain"
)

// mockLogger implements the Logger interface for testing.
type mockLogger struct{}

func (m *mockLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (m *mockLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}

// fakeWindow implements domain.WindowContext.
type fakeWindow struct {
	activeFile string
	folders    []string
}

func (w *fakeWindow) ActiveFilePath() (string, bool) { return w.activeFile, w.activeFile != "" }
func (w *fakeWindow) OpenFolders() []string          { return w.folders }

// recordingNotifier collects user-facing messages across goroutines.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	notified chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notified: make(chan struct{}, 8)}
}

func (n *recordingNotifier) ErrorMessage(msg string) {
	n.mu.Lock()
	n.messages = append(n.messages, msg)
	n.mu.Unlock()
	n.notified <- struct{}{}
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// recordingOpener records opened URLs.
type recordingOpener struct {
	mu     sync.Mutex
	urls   []string
	opened chan string
}

func newRecordingOpener() *recordingOpener {
	return &recordingOpener{opened: make(chan string, 8)}
}

func (o *recordingOpener) Open(url string) error {
	o.mu.Lock()
	o.urls = append(o.urls, url)
	o.mu.Unlock()
	o.opened <- url
	return nil
}

// stubRemoteSource implements domain.RemoteSource.
type stubRemoteSource struct {
	uri    string
	uriErr error
}

func (s *stubRemoteSource) TrackingRemote(_ context.Context) (string, error) { return "", nil }

func (s *stubRemoteSource) RemoteURI(_ context.Context, _ string) (string, error) {
	return s.uri, s.uriErr
}

// stubTranslator implements domain.Translator.
type stubTranslator struct {
	url string
	ok  bool
}

func (s *stubTranslator) Translate(_ string) (string, bool) { return s.url, s.ok }

func testDeps(
	notifier *recordingNotifier,
	opener *recordingOpener,
	remotes domain.RemoteSource,
	translator domain.Translator,
) Dependencies {
	return Dependencies{
		FindGitBin: func() (string, bool) { return "/usr/bin/git", true },
		RemoteSourceFactory: func(_, _ string) (domain.RemoteSource, error) {
			return remotes, nil
		},
		Translator: translator,
		Opener:     opener,
		Notifier:   notifier,
		Logger:     &mockLogger{},
	}
}

func TestEnabled(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0o755))
	plain := t.TempDir()

	cmd := NewOpenRepoCommand(Dependencies{})

	assert.True(t, cmd.Enabled(&fakeWindow{folders: []string{repo}}))
	assert.False(t, cmd.Enabled(&fakeWindow{folders: []string{plain}}))
	assert.False(t, cmd.Enabled(&fakeWindow{}))
}

func TestWorker_GitBinaryMissing(t *testing.T) {
	notifier := newRecordingNotifier()
	deps := testDeps(notifier, newRecordingOpener(), &stubRemoteSource{}, &stubTranslator{})
	deps.FindGitBin = func() (string, bool) { return "", false }

	NewOpenRepoCommand(deps).worker("/workspace", "")

	assert.Equal(t, []string{"Can't find git binary..."}, notifier.all())
}

func TestWorker_RemoteSourceFactoryFails(t *testing.T) {
	notifier := newRecordingNotifier()
	deps := testDeps(notifier, newRecordingOpener(), &stubRemoteSource{}, &stubTranslator{})
	deps.RemoteSourceFactory = func(_, _ string) (domain.RemoteSource, error) {
		return nil, errors.New("binary vanished")
	}

	NewOpenRepoCommand(deps).worker("/workspace", "")

	assert.Equal(t, []string{"Can't find git binary..."}, notifier.all())
}

func TestWorker_NoRemoteURI(t *testing.T) {
	notifier := newRecordingNotifier()
	deps := testDeps(notifier, newRecordingOpener(), &stubRemoteSource{}, &stubTranslator{})

	NewOpenRepoCommand(deps).worker("/workspace", "upstream")

	assert.Equal(t, []string{`Can't determine repo remote URI: upstream`}, notifier.all())
}

func TestWorker_UntranslatableURI(t *testing.T) {
	notifier := newRecordingNotifier()
	remotes := &stubRemoteSource{uri: "ftp://example.com/repo"}
	deps := testDeps(notifier, newRecordingOpener(), remotes, &stubTranslator{ok: false})

	NewOpenRepoCommand(deps).worker("/workspace", "")

	assert.Equal(t, []string{"Can't convert remote URI to web URL: ftp://example.com/repo"}, notifier.all())
}

func TestWorker_OpensWebURL(t *testing.T) {
	notifier := newRecordingNotifier()
	opener := newRecordingOpener()
	remotes := &stubRemoteSource{uri: "git@github.com:a/b.git"}
	translator := &stubTranslator{url: "https://github.com/a/b.git", ok: true}
	deps := testDeps(notifier, opener, remotes, translator)

	NewOpenRepoCommand(deps).worker("/workspace", "")

	assert.Empty(t, notifier.all())
	assert.Equal(t, []string{"https://github.com/a/b.git"}, opener.urls)
}

func TestRun_ResolvesOnBackgroundGoroutine(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0o755))

	opener := newRecordingOpener()
	remotes := &stubRemoteSource{uri: "git@github.com:a/b.git"}
	translator := &stubTranslator{url: "https://github.com/a/b.git", ok: true}
	deps := testDeps(newRecordingNotifier(), opener, remotes, translator)

	NewOpenRepoCommand(deps).Run(&fakeWindow{folders: []string{repo}}, "")

	select {
	case url := <-opener.opened:
		assert.Equal(t, "https://github.com/a/b.git", url)
	case <-time.After(5 * time.Second):
		t.Fatal("worker never opened the URL")
	}
}

func TestRun_NoWorkspaceIsANoOp(t *testing.T) {
	notifier := newRecordingNotifier()
	deps := testDeps(notifier, newRecordingOpener(), &stubRemoteSource{}, &stubTranslator{})
	calls := 0
	deps.FindGitBin = func() (string, bool) { calls++; return "", false }

	NewOpenRepoCommand(deps).Run(&fakeWindow{}, "")

	select {
	case <-notifier.notified:
		t.Fatal("no worker should have been spawned")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Zero(t, calls)
}
