//go:build !windows

package gitexec

import "os/exec"

// hideConsoleWindow is a no-op outside Windows.
func hideConsoleWindow(_ *exec.Cmd) {}
