package metrics

import (
	"testing"
	"time"

	"github.com/autodebugdev/autodebug/internal/core"
)

func session(phase core.Phase, iterations int, age, duration time.Duration) core.Session {
	created := time.Now().UTC().Add(-age)
	s := core.Session{
		Phase:      phase,
		Iterations: iterations,
		CreatedAt:  created,
	}
	if phase != core.PhaseRunning {
		completed := created.Add(duration)
		s.CompletedAt = &completed
	}
	return s
}

func TestCalculate(t *testing.T) {
	sessions := []core.Session{
		session(core.PhaseSucceeded, 2, time.Hour, 10*time.Second),
		session(core.PhaseSucceeded, 1, 2*time.Hour, 20*time.Second),
		session(core.PhaseFailed, 3, 3*time.Hour, 30*time.Second),
	}

	stats := Calculate(sessions)

	if stats.Sessions != 3 {
		t.Errorf("Sessions = %d, want 3", stats.Sessions)
	}
	if stats.Succeeded != 2 || stats.Failed != 1 {
		t.Errorf("outcomes = %d/%d, want 2/1", stats.Succeeded, stats.Failed)
	}
	if stats.SuccessRate < 66.6 || stats.SuccessRate > 66.7 {
		t.Errorf("SuccessRate = %v, want ~66.67", stats.SuccessRate)
	}
	if stats.MeanIterations != 2 {
		t.Errorf("MeanIterations = %v, want 2", stats.MeanIterations)
	}
	if stats.MeanDuration != 20*time.Second {
		t.Errorf("MeanDuration = %s, want 20s", stats.MeanDuration)
	}
}

func TestCalculateIgnoresOldSessions(t *testing.T) {
	sessions := []core.Session{
		session(core.PhaseSucceeded, 1, time.Hour, time.Second),
		session(core.PhaseFailed, 3, 40*24*time.Hour, time.Second),
	}

	stats := Calculate(sessions)
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1 (old session in window)", stats.Sessions)
	}
	if stats.SuccessRate != 100 {
		t.Errorf("SuccessRate = %v, want 100", stats.SuccessRate)
	}
}

func TestCalculateEmpty(t *testing.T) {
	stats := Calculate(nil)
	if stats.Sessions != 0 || stats.SuccessRate != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestCalculateRunningSessions(t *testing.T) {
	sessions := []core.Session{
		session(core.PhaseRunning, 1, time.Minute, 0),
	}

	stats := Calculate(sessions)
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", stats.Sessions)
	}
	if stats.SuccessRate != 0 {
		t.Errorf("SuccessRate = %v, want 0 with no terminal sessions", stats.SuccessRate)
	}
	if stats.MeanDuration != 0 {
		t.Errorf("MeanDuration = %s, want 0", stats.MeanDuration)
	}
}
