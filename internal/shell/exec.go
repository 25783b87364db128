// Package shell runs a generated command verbatim under the user's shell.
// This is the explicit execute mode only; the tool never runs commands on
// its own.
package shell

import (
	"fmt"
	"os"
	"os/exec"
)

// Run executes command with the user's shell, wired to the terminal.
func Run(command string) error {
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}

	cmd := exec.Command(sh, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}
