package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rewardlab/rewardlab/bench"
)

// AnalysisFileConfig is the yaml form of the analysis thresholds. Pointer
// fields distinguish "absent" from "explicit zero" so partial files only
// override what they set.
type AnalysisFileConfig struct {
	SuccessThreshold   *float64 `yaml:"success_threshold"`
	TrivialActionFloor *int     `yaml:"trivial_action_floor"`
	DiversityCutoff    *float64 `yaml:"diversity_cutoff"`
	VariabilityCutoff  *float64 `yaml:"variability_cutoff"`
	LoopPenaltyCheck   *bool    `yaml:"loop_penalty_check"`
}

// LoadAnalysisParams merges defaults with an optional yaml config file.
func LoadAnalysisParams(path string) (bench.AnalysisParams, bool, error) {
	params := bench.DefaultAnalysisParams()
	loopCheck := true
	if path == "" {
		return params, loopCheck, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, loopCheck, fmt.Errorf("read analysis config %s: %w", path, err)
	}
	var cfg AnalysisFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return params, loopCheck, fmt.Errorf("parse analysis config %s: %w", path, err)
	}

	if cfg.SuccessThreshold != nil {
		params.SuccessThreshold = *cfg.SuccessThreshold
	}
	if cfg.TrivialActionFloor != nil {
		params.TrivialActionFloor = *cfg.TrivialActionFloor
	}
	if cfg.DiversityCutoff != nil {
		params.DiversityCutoff = *cfg.DiversityCutoff
	}
	if cfg.VariabilityCutoff != nil {
		params.VariabilityCutoff = *cfg.VariabilityCutoff
	}
	if cfg.LoopPenaltyCheck != nil {
		loopCheck = *cfg.LoopPenaltyCheck
	}
	return params, loopCheck, nil
}
