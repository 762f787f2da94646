//go:build windows

package gitexec

import (
	"os/exec"
	"syscall"
)

// hideConsoleWindow suppresses the transient console window Windows would
// otherwise show when a GUI process spawns a console executable.
func hideConsoleWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
