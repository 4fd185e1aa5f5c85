// Package netcheck probes outbound connectivity with the system ping
// binary. One echo request, bounded by a short timeout so a blackholed
// network cannot hang the report.
package netcheck

import (
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds the ping subprocess.
const DefaultTimeout = 5 * time.Second

// runPing executes the ping binary. Overridable in tests.
var runPing = func(ctx context.Context, target string) error {
	cmd := exec.CommandContext(ctx, "ping", "-c", "1", target)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Checker probes a single target address.
type Checker struct {
	// Target is the address to ping.
	Target string

	// Timeout bounds the subprocess. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// Ping sends one echo request to the target. It returns true when the
// target answered and false otherwise; the error carries the subprocess
// failure for logging, never distinguishing exit codes.
func (c *Checker) Ping(ctx context.Context) (bool, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := runPing(pingCtx, c.Target); err != nil {
		return false, err
	}
	return true, nil
}
