package metrics

import (
	"time"

	"github.com/autodebugdev/autodebug/internal/core"
)

// RepairStats summarizes repair outcomes over the last 30 days.
type RepairStats struct {
	Sessions       int           `json:"sessions"`
	Succeeded      int           `json:"succeeded"`
	Failed         int           `json:"failed"`
	SuccessRate    float64       `json:"success_rate"`
	MeanIterations float64       `json:"mean_iterations"`
	MeanDuration   time.Duration `json:"mean_duration"`
}

// Calculate computes repair stats from sessions created in the last 30 days.
func Calculate(sessions []core.Session) RepairStats {
	now := time.Now().UTC()
	since := now.Add(-30 * 24 * time.Hour)

	window := make([]core.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.CreatedAt.After(since) {
			window = append(window, s)
		}
	}

	if len(window) == 0 {
		return RepairStats{}
	}

	stats := RepairStats{Sessions: len(window)}

	var totalIterations int
	var totalDuration time.Duration
	var durationCount int
	for _, s := range window {
		switch s.Phase {
		case core.PhaseSucceeded:
			stats.Succeeded++
		case core.PhaseFailed:
			stats.Failed++
		}
		totalIterations += s.Iterations
		if s.CompletedAt != nil {
			totalDuration += s.CompletedAt.Sub(s.CreatedAt)
			durationCount++
		}
	}

	terminal := stats.Succeeded + stats.Failed
	if terminal > 0 {
		stats.SuccessRate = (float64(stats.Succeeded) / float64(terminal)) * 100.0
	}
	stats.MeanIterations = float64(totalIterations) / float64(len(window))
	if durationCount > 0 {
		stats.MeanDuration = totalDuration / time.Duration(durationCount)
	}

	return stats
}
