package gitexec

import (
	"os"
	"path/filepath"

	"github.com/jfcherng/gitweb/internal/domain"
)

// FindRepoRoot walks path and its ancestors, nearest first, and returns the
// first directory containing a `.git` entry. The entry may be a file (a git
// worktree pointer) or a directory; only its presence is checked, its
// contents are not validated.
func FindRepoRoot(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	// Symlink resolution can fail on restricted filesystems; fall back to
	// the unresolved path.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	for dir := abs; ; {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// IsManaged reports whether path lives under a git-managed directory.
// This is purely a presence check; it does not require a git installation.
func IsManaged(path string) bool {
	_, ok := FindRepoRoot(path)
	return ok
}

// NormalizeWorkspace maps a file path to its containing directory.
// A workspace is always a directory, never a file.
func NormalizeWorkspace(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// DeriveWorkspace picks the best workspace candidate from an editor window:
// the directory of the active on-disk file if there is one, otherwise the
// first open folder.
func DeriveWorkspace(win domain.WindowContext) (string, bool) {
	if file, ok := win.ActiveFilePath(); ok && file != "" {
		return filepath.Dir(file), true
	}
	if folders := win.OpenFolders(); len(folders) > 0 {
		return folders[0], true
	}
	return "", false
}
