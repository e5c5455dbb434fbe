// Package command provides the adapter that runs OS command-line tools.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang-netenforce/internal/port"
)

// RunnerAdapter is an adapter that implements the CommandRunner port using os/exec.
type RunnerAdapter struct {
	timeout time.Duration
}

// Ensure RunnerAdapter implements the CommandRunner port
var _ port.CommandRunner = (*RunnerAdapter)(nil)

// NewRunnerAdapter creates a runner that kills commands running longer than timeout.
// A zero timeout leaves the bound to the caller's context.
func NewRunnerAdapter(timeout time.Duration) *RunnerAdapter {
	return &RunnerAdapter{timeout: timeout}
}

// Run executes name with args and returns its standard output.
func (r *RunnerAdapter) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return stdout.Bytes(), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			return stdout.Bytes(), fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
		}
		return stdout.Bytes(), fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, msg)
	}

	return stdout.Bytes(), nil
}
