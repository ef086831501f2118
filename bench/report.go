package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// AnalysisParams groups the policy thresholds used by BuildReport. The
// action floor and diversity cutoff are policy parameters, not universal
// constants; the defaults mirror common benchmark practice.
type AnalysisParams struct {
	SuccessThreshold   float64 `json:"success_threshold" yaml:"success_threshold"`
	TrivialActionFloor int     `json:"trivial_action_floor" yaml:"trivial_action_floor"`
	DiversityCutoff    float64 `json:"diversity_cutoff" yaml:"diversity_cutoff"`
	VariabilityCutoff  float64 `json:"variability_cutoff" yaml:"variability_cutoff"`
}

// DefaultAnalysisParams returns the standard thresholds.
func DefaultAnalysisParams() AnalysisParams {
	return AnalysisParams{
		SuccessThreshold:   0.7,
		TrivialActionFloor: 3,
		DiversityCutoff:    0.3,
		VariabilityCutoff:  DefaultVariabilityCutoff,
	}
}

// Report is the full sandbox analysis document.
type Report struct {
	ReportID        string                     `json:"report_id"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	Params          AnalysisParams             `json:"params"`
	Overview        Overview                   `json:"overview"`
	UnresolvedTasks []TaskKey                  `json:"unresolved_tasks"`
	TrivialTasks    []TaskKey                  `json:"trivial_tasks"`
	AgentDiversity  map[string]AgentDiversity  `json:"agent_diversity"`
	SeedVariability map[string]SeedVariability `json:"seed_variability"`
	SkippedEntries  int                        `json:"skipped_entries"`
}

// Overview summarizes the dataset as a whole.
type Overview struct {
	TotalEntries int              `json:"total_entries"`
	Projects     []ProjectMetrics `json:"projects"`
	MeanScore    float64          `json:"mean_score"`
	SuccessRate  float64          `json:"success_rate"`
}

// BuildReport runs every analysis over the dataset and assembles the
// report. skipped is the count of records dropped at load time for missing
// identity fields.
func BuildReport(entries []DatasetEntry, skipped int, params AnalysisParams) *Report {
	scores := make([]float64, len(entries))
	successes := 0
	for i := range entries {
		scores[i] = entries[i].Score
		if entries[i].Score >= params.SuccessThreshold {
			successes++
		}
	}
	overview := Overview{
		TotalEntries: len(entries),
		Projects:     SortedProjects(ComputeProjectMetrics(entries, params.SuccessThreshold)),
		MeanScore:    Mean(scores),
	}
	if len(entries) > 0 {
		overview.SuccessRate = float64(successes) / float64(len(entries))
	}

	variability := ComputeSeedVariability(entries, params.SuccessThreshold, params.VariabilityCutoff)
	// JSON objects need string keys; render the composite basis key as
	// "project/basis".
	variabilityOut := make(map[string]SeedVariability, len(variability))
	for key, v := range variability {
		variabilityOut[fmt.Sprintf("%s/%s", key.ProjectID, key.Basis)] = v
	}

	return &Report{
		ReportID:        uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Params:          params,
		Overview:        overview,
		UnresolvedTasks: FindUnresolvedTasks(entries, params.SuccessThreshold),
		TrivialTasks:    FindTrivialTasks(entries, params.SuccessThreshold, params.TrivialActionFloor),
		AgentDiversity:  DetectAgentMemorization(entries, params.DiversityCutoff),
		SeedVariability: variabilityOut,
		SkippedEntries:  skipped,
	}
}

// WriteReport marshals the report as indented JSON to path.
func WriteReport(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
