//go:build windows

package gitexec

import (
	"os"
	"path/filepath"
)

// bundledGitCandidates probes the git bundled with Sublime Merge on Windows:
// the user-configured install, the default install location, and an install
// next to our own executable, in that order.
func bundledGitCandidates(mergeToolPath string) []string {
	var candidates []string

	if mergeToolPath != "" {
		candidates = append(candidates,
			filepath.Join(mergeToolPath, "Git", "cmd", "git.exe"))
	}

	candidates = append(candidates,
		`C:\Program Files\Sublime Merge\Git\cmd\git.exe`)

	if self, err := os.Executable(); err == nil {
		candidates = append(candidates,
			filepath.Join(filepath.Dir(self), "..", "Sublime Merge", "Git", "cmd", "git.exe"))
	}

	return candidates
}
