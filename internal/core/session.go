package core

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Phase represents the lifecycle state of a repair session.
type Phase string

const (
	PhaseRunning   Phase = "running"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// validTransitions defines the allowed from→to phase transitions.
// Both succeeded and failed are terminal.
var validTransitions = map[Phase]map[Phase]bool{
	PhaseRunning: {PhaseSucceeded: true, PhaseFailed: true},
}

// ErrInvalidTransition is returned when a phase transition is not allowed.
var ErrInvalidTransition = errors.New("invalid session transition")

// FailReason explains why a session ended in the failed phase.
type FailReason string

const (
	ReasonUnsupported FailReason = "unsupported_language"
	ReasonFile        FailReason = "file_error"
	ReasonAI          FailReason = "ai_error"
	ReasonExhausted   FailReason = "retries_exhausted"
)

// Diagnostics is the (exit code, stdout, stderr) triple captured from
// one sandboxed run.
type Diagnostics struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	TimedOut bool   `json:"timed_out"`
}

// Session tracks one repair attempt against a single target file. The
// original source is captured once and never mutated; the current
// source is the working hypothesis rewritten each iteration.
type Session struct {
	ID          string       `json:"id"`
	Target      string       `json:"target"`
	Request     string       `json:"request"`
	Language    string       `json:"language,omitempty"`
	Policy      string       `json:"policy"`
	Phase       Phase        `json:"phase"`
	Iterations  int          `json:"iterations"`
	Executions  int          `json:"executions"`
	FixRequests int          `json:"fix_requests"`
	Diff        string       `json:"diff,omitempty"`
	Last        *Diagnostics `json:"last_diagnostics,omitempty"`
	BackupPath  string       `json:"backup_path,omitempty"`
	FailReason  FailReason   `json:"fail_reason,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`

	// Source snapshots are process-local and never persisted.
	Original string `json:"-"`
	Current  string `json:"-"`
}

var sessionSeq atomic.Int64

// NewSession creates a session in the running phase for the given
// target file and bug description.
func NewSession(target, request string) *Session {
	id := fmt.Sprintf("repair-%s-%03d",
		time.Now().UTC().Format("20060102-150405"), sessionSeq.Add(1)%1000)
	return &Session{
		ID:        id,
		Target:    target,
		Request:   request,
		Phase:     PhaseRunning,
		CreatedAt: time.Now().UTC(),
	}
}

// Transition validates and applies a phase transition on the session.
// Returns ErrInvalidTransition if the transition is not allowed.
func (s *Session) Transition(to Phase) error {
	from := s.Phase

	allowed, ok := validTransitions[from]
	if !ok || !allowed[to] {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
	}

	s.Phase = to

	if to == PhaseSucceeded || to == PhaseFailed {
		now := time.Now().UTC()
		s.CompletedAt = &now
	}
	return nil
}

// Terminal reports whether the session has reached a terminal phase.
func (s *Session) Terminal() bool {
	return s.Phase == PhaseSucceeded || s.Phase == PhaseFailed
}
