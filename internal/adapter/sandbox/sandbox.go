// Package sandbox executes a target file as a child process with a
// wall-clock timeout and captures its diagnostics. Every execution
// fault — timeout, missing runtime, spawn failure — is normalized into
// the (exit code, stdout, stderr) triple; nothing escapes to the
// caller. Retry policy belongs to the engine, not this layer.
package sandbox

import (
	"strings"
	"time"
)

const (
	defaultTimeout = 5 * time.Second

	// timeoutDiagnostic is the synthetic stderr text for a run that hit
	// the wall-clock limit.
	timeoutDiagnostic = "CRITICAL ERROR: Code Execution Timed Out (Possible Infinite Loop)"
)

// commandName returns the executable name from a resolved run command.
func commandName(resolved string) string {
	fields := strings.Fields(resolved)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
