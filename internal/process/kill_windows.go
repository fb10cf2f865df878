//go:build windows

// Package process provides helpers for managing external tool process
// trees. The Mermaid CLI spawns a Chromium instance via puppeteer, so
// killing the direct child alone can leave browsers behind.
package process

import (
	"os/exec"
	"strconv"
)

// SetProcessGroup is a no-op on Windows; taskkill /T handles the tree.
func SetProcessGroup(cmd *exec.Cmd) {}

// KillProcessGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; the command's own Wait reports the outcome
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
