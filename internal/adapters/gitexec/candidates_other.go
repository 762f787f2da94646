//go:build !windows

package gitexec

// bundledGitCandidates returns nothing outside Windows; only the Windows
// build of the companion merge tool ships its own git.
func bundledGitCandidates(_ string) []string {
	return nil
}
