package mmd2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/alnah/go-mmd2pdf/internal/process"
)

// CommandRunner abstracts external tool execution to enable testing
// without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Commands run in
// their own process group so that a context cancellation kills the
// whole tree, including any Chromium spawned by mmdc.
type ExecRunner struct{}

// Compile-time interface implementation check.
var _ CommandRunner = (*ExecRunner)(nil)

// Run executes the command with captured stdout and stderr, blocking
// until completion or context cancellation.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return cmd.Process.Kill()
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), stderr.String(), ctxErr
		}
		return stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", name, err)
	}

	return stdout.String(), stderr.String(), nil
}
