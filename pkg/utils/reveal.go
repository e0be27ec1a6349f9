package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// startCommand launches a detached process. Replaced in tests.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// RevealCommand returns the platform file-manager command that opens dir.
func RevealCommand(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// RevealFolder opens dir in the platform file manager. The folder must
// already exist.
func RevealFolder(dir string) error {
	if !FileExists(dir) {
		return fmt.Errorf("folder %s does not exist yet", dir)
	}

	name, args := RevealCommand(runtime.GOOS, dir)
	if err := startCommand(name, args...); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", dir, name, err)
	}
	return nil
}
