// Package viewer opens generated files with the platform's default application.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// System opens files through the OS shell association.
type System struct{}

// Open starts the default application for path and does not wait for it.
func (System) Open(path string) error {
	cmd := command(runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	// Reap the child once the viewer exits.
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		// url.dll works from Windows 7 onwards and needs no console window.
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
