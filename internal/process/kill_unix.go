//go:build !windows

// Package process provides helpers for managing external tool process
// trees. The Mermaid CLI spawns a Chromium instance via puppeteer, so
// killing the direct child alone can leave browsers behind.
package process

import (
	"os/exec"
	"syscall"
)

// SetProcessGroup places the command in its own process group so the
// whole tree can be killed together. Must be called before Start.
func SetProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending
// SIGKILL to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; the command's own Wait reports the outcome
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
