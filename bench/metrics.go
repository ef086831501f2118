package bench

import "sort"

// ProjectMetrics aggregates all attempts recorded against one project.
type ProjectMetrics struct {
	ProjectID      string  `json:"project_id"`
	Count          int     `json:"count"`
	MeanScore      float64 `json:"mean_score"`
	SuccessRate    float64 `json:"success_rate"`
	TimedCount     int     `json:"timed_count,omitempty"`
	MeanDurationMS float64 `json:"mean_duration_ms,omitempty"`
	P95DurationMS  float64 `json:"p95_duration_ms,omitempty"`
}

// ComputeProjectMetrics groups entries by project and aggregates count,
// mean score, success rate, and timing over entries that carry a duration.
// Deterministic; an empty input yields an empty map, never a division
// error.
func ComputeProjectMetrics(entries []DatasetEntry, successThreshold float64) map[string]ProjectMetrics {
	scores := make(map[string][]float64)
	durations := make(map[string][]float64)
	successes := make(map[string]int)

	for i := range entries {
		e := &entries[i]
		scores[e.ProjectID] = append(scores[e.ProjectID], e.Score)
		if e.Score >= successThreshold {
			successes[e.ProjectID]++
		}
		if e.DurationMS > 0 {
			durations[e.ProjectID] = append(durations[e.ProjectID], e.DurationMS)
		}
	}

	out := make(map[string]ProjectMetrics, len(scores))
	for project, s := range scores {
		m := ProjectMetrics{
			ProjectID:   project,
			Count:       len(s),
			MeanScore:   Mean(s),
			SuccessRate: float64(successes[project]) / float64(len(s)),
		}
		if d := durations[project]; len(d) > 0 {
			m.TimedCount = len(d)
			m.MeanDurationMS = Mean(d)
			m.P95DurationMS = Percentile(d, 95)
		}
		out[project] = m
	}
	return out
}

// SortedProjects returns metric values ordered by project ID for stable
// report output.
func SortedProjects(metrics map[string]ProjectMetrics) []ProjectMetrics {
	out := make([]ProjectMetrics, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}
