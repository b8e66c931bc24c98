package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/patch"
	"github.com/autodebugdev/autodebug/internal/policy"
)

const defaultMaxRetries = 3

// Engine drives the repair loop: write hypothesis → sandbox run →
// policy check → AI fix → repeat, within a bounded retry budget.
type Engine struct {
	cfg    *config.Config
	langs  *lang.Table
	runner SandboxRunner
	fixer  FixRequester
	store  SessionStore // optional
}

// NewEngine creates an Engine with all dependencies injected. The store
// may be nil when no audit history is wanted.
func NewEngine(cfg *config.Config, langs *lang.Table, runner SandboxRunner, fixer FixRequester, store SessionStore) *Engine {
	return &Engine{
		cfg:    cfg,
		langs:  langs,
		runner: runner,
		fixer:  fixer,
		store:  store,
	}
}

// Repair drives one session for the target file to a terminal phase.
// The returned session always carries the last captured diagnostics;
// the error is non-nil iff the session failed.
func (e *Engine) Repair(ctx context.Context, target, request string) (*Session, error) {
	session := NewSession(target, request)
	log.Printf("[engine] starting session %s for %s", session.ID, target)

	language, ok := e.langs.Resolve(target)
	if !ok {
		return e.fail(session, ReasonUnsupported,
			fmt.Errorf("unsupported file extension: %s", filepath.Ext(target)))
	}
	session.Language = language.Name

	pol, err := policy.FromName(e.cfg.Repair.Policy)
	if err != nil {
		return e.fail(session, ReasonFile, err)
	}
	session.Policy = pol.Name()

	original, err := os.ReadFile(target)
	if err != nil {
		return e.fail(session, ReasonFile, fmt.Errorf("read target: %w", err))
	}
	session.Original = string(original)
	session.Current = session.Original

	maxRetries := e.cfg.Repair.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for i := 1; i <= maxRetries; i++ {
		session.Iterations = i

		// The on-disk file is the current hypothesis: write it, then run it.
		if err := os.WriteFile(target, []byte(session.Current), 0644); err != nil {
			return e.fail(session, ReasonFile, fmt.Errorf("write hypothesis: %w", err))
		}

		diag := e.runner.Execute(ctx, target, language)
		session.Executions++
		session.Last = &diag
		e.logf(session, "info", "iteration %d/%d: exit=%d timed_out=%v",
			i, maxRetries, diag.ExitCode, diag.TimedOut)

		if pol.Success(diag.ExitCode, i, maxRetries) {
			return e.succeed(session)
		}

		if i == maxRetries {
			break
		}

		fix, err := e.fixer.RequestFix(ctx, FixRequest{
			Code:        session.Current,
			Stderr:      diag.Stderr,
			Stdout:      diag.Stdout,
			UserRequest: request,
			Language:    language,
		})
		session.FixRequests++
		if err != nil {
			// No fix available: terminal, and no further sandbox run.
			return e.fail(session, ReasonAI, fmt.Errorf("request fix: %w", err))
		}

		if strings.TrimSpace(fix) == strings.TrimSpace(session.Current) {
			e.logf(session, "info", "iteration %d: model returned identical code", i)
			if pol.ConvergeOnEcho() {
				return e.succeed(session)
			}
			// Keep the hypothesis and re-run it on the next iteration.
			continue
		}

		if diff, derr := patch.Unified(session.Current, fix, filepath.Base(target)); derr == nil && diff != "" {
			e.logf(session, "info", "iteration %d: applying candidate fix\n%s", i, diff)
		}
		session.Current = fix
	}

	return e.fail(session, ReasonExhausted,
		fmt.Errorf("no clean run after %d attempts", maxRetries))
}

// succeed finalizes a successful session: backup the original once,
// record the cumulative diff, and persist the outcome.
func (e *Engine) succeed(session *Session) (*Session, error) {
	if session.Executions > 0 {
		backupPath := session.Target + ".bak"
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			if werr := os.WriteFile(backupPath, []byte(session.Original), 0644); werr != nil {
				e.logf(session, "warn", "backup write failed: %v", werr)
			} else {
				session.BackupPath = backupPath
			}
		} else {
			// A backup from an earlier session already holds the true
			// original; never overwrite it.
			session.BackupPath = backupPath
		}
	}

	if diff, err := patch.Unified(session.Original, session.Current, filepath.Base(session.Target)); err == nil {
		session.Diff = diff
	}

	if err := session.Transition(PhaseSucceeded); err != nil {
		return session, err
	}
	e.logf(session, "info", "session succeeded at iteration %d", session.Iterations)
	e.persist(session)
	return session, nil
}

// fail finalizes a failed session. The working file keeps whatever the
// last iteration wrote unless restore_on_failure is configured.
func (e *Engine) fail(session *Session, reason FailReason, cause error) (*Session, error) {
	session.FailReason = reason

	if e.cfg.Repair.RestoreOnFailure && session.Executions > 0 {
		if err := os.WriteFile(session.Target, []byte(session.Original), 0644); err != nil {
			e.logf(session, "warn", "restore original failed: %v", err)
		} else {
			e.logf(session, "info", "restored original source after failure")
		}
	}

	if err := session.Transition(PhaseFailed); err != nil {
		log.Printf("[engine] failed to transition session %s: %v", session.ID, err)
	}
	e.logf(session, "error", "session failed: %v (reason: %s)", cause, reason)
	e.persist(session)

	return session, fmt.Errorf("session %s failed at %s: %w", session.ID, reason, cause)
}

func (e *Engine) persist(session *Session) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSession(session); err != nil {
		log.Printf("[engine] failed to save session %s: %v", session.ID, err)
	}
}

// logf logs to the process log and, when a store is present, to the
// per-session log.
func (e *Engine) logf(session *Session, level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[engine] %s: %s", session.ID, msg)
	if e.store != nil {
		if err := e.store.AppendLog(session.ID, level, msg); err != nil {
			log.Printf("[engine] failed to append log for %s: %v", session.ID, err)
		}
	}
}
