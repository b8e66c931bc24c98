package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/variable"
)

// LocalRunner executes the target file on the local machine.
type LocalRunner struct {
	timeout time.Duration
}

var _ core.SandboxRunner = (*LocalRunner)(nil)

// NewLocal creates a LocalRunner from the sandbox config.
func NewLocal(cfg config.SandboxConfig) *LocalRunner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LocalRunner{timeout: timeout}
}

// Execute runs the file's language command with a wall-clock timeout
// and normalizes every fault into the diagnostics triple.
func (r *LocalRunner) Execute(ctx context.Context, path string, language lang.Language) core.Diagnostics {
	resolved := variable.Resolve(language.Run, map[string]string{"FILE": path})

	// Surface a missing runtime as its own diagnostic instead of the
	// shell's exit 127.
	if name := commandName(resolved); name != "" {
		if _, err := exec.LookPath(name); err != nil {
			return core.Diagnostics{
				ExitCode: 1,
				Stderr:   "CRITICAL ERROR: Runtime not found for command: " + name,
			}
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c := exec.CommandContext(runCtx, "sh", "-c", resolved)

	// Ensure child processes are killed when the deadline hits.
	c.WaitDelay = 500 * time.Millisecond
	c.Cancel = func() error {
		return c.Process.Kill()
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return core.Diagnostics{
			ExitCode: 1,
			Stderr:   timeoutDiagnostic,
			TimedOut: true,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return core.Diagnostics{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		// Spawn fault: no exit status to report.
		return core.Diagnostics{ExitCode: 1, Stderr: err.Error()}
	}

	return core.Diagnostics{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}
