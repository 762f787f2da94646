// Package browser provides an adapter that opens URLs in the user's
// default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches the platform browser for a web URL.
// It implements domain.URLOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens url in the default browser. The launched process is not waited
// on; only launch failures are reported.
func (o *Opener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s in browser: %w", url, err)
	}
	return nil
}
