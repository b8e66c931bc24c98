package core

import (
	"context"

	"github.com/autodebugdev/autodebug/internal/lang"
)

// SandboxRunner executes the target file as a child process and captures
// its diagnostics. Implementations never return an execution fault;
// every fault is normalized into the Diagnostics triple with a non-zero
// exit code and a diagnostic string on stderr.
type SandboxRunner interface {
	Execute(ctx context.Context, path string, language lang.Language) Diagnostics
}

// FixRequest carries one repair consultation for the model.
type FixRequest struct {
	Code        string
	Stderr      string
	Stdout      string
	UserRequest string
	Language    lang.Language
}

// FixRequester produces a candidate replacement source for a failing
// file. An error means no fix is available this iteration; the engine
// decides whether that is terminal.
type FixRequester interface {
	RequestFix(ctx context.Context, req FixRequest) (string, error)
}

// SessionStore records session outcomes and per-session log lines for
// the history and stats surfaces. The live session itself stays
// in-memory; only terminal snapshots are persisted.
type SessionStore interface {
	SaveSession(s *Session) error
	AppendLog(sessionID, level, message string) error
}
