package gitexec

import (
	"os/exec"
	"sync"
)

// Locator finds a usable git executable. The result is memoized for the
// lifetime of the Locator: discovery runs once, and a binary moved afterwards
// yields an acceptably stale answer (there is no invalidation mechanism).
type Locator struct {
	// MergeToolPath is an optional user-configured install directory of a
	// companion merge tool that ships its own git (Sublime Merge on Windows).
	MergeToolPath string

	once sync.Once
	path string
	ok   bool

	// lookPath is swappable in tests; defaults to exec.LookPath.
	lookPath func(file string) (string, error)
}

// NewLocator creates a Locator. mergeToolPath may be empty.
func NewLocator(mergeToolPath string) *Locator {
	return &Locator{
		MergeToolPath: mergeToolPath,
		lookPath:      exec.LookPath,
	}
}

// Find returns the first candidate that resolves to an existing executable.
// Absence of git is a normal outcome signaled by (_, false), never an error.
func (l *Locator) Find() (string, bool) {
	l.once.Do(func() {
		if l.lookPath == nil {
			l.lookPath = exec.LookPath
		}
		for _, candidate := range l.candidates() {
			if resolved, err := l.lookPath(candidate); err == nil {
				l.path, l.ok = resolved, true
				return
			}
		}
	})
	return l.path, l.ok
}

// candidates builds the ordered probe list: the bare name first, then any
// platform-specific bundled installations.
func (l *Locator) candidates() []string {
	return append([]string{"git"}, bundledGitCandidates(l.MergeToolPath)...)
}
