// Package sysinfo probes the local machine for the context handed to the
// AI backend: kernel identification, the user's shell and which language
// runtimes exist. Failures degrade; callers substitute Unknown.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Unknown is the placeholder used when the probe fails.
const Unknown = "Unknown system"

const (
	unameTimeout   = 5 * time.Second
	versionTimeout = 3 * time.Second
)

// Collect gathers the system description string.
func Collect() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), unameTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "uname", "-a").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run uname: %w", err)
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "unknown"
	}

	lines := []string{
		"System: " + strings.TrimSpace(string(output)),
		"Shell: " + shell,
		"Node: " + toolVersion("node", "--version"),
		"Python: " + pythonVersion(),
		"Lua: " + toolVersion("lua", "-v"),
	}

	return strings.Join(lines, "\n"), nil
}

func pythonVersion() string {
	if v := toolVersion("python3", "--version"); v != "not installed" {
		return v
	}
	return toolVersion("python", "--version")
}

func toolVersion(tool string, args ...string) string {
	if _, err := exec.LookPath(tool); err != nil {
		return "not installed"
	}

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool, args...)
	output, err := cmd.CombinedOutput() // lua -v prints to stderr
	if err != nil {
		return fmt.Sprintf("%s installed (version unknown)", tool)
	}

	line := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if line == "" {
		return "version unknown"
	}
	return line
}
