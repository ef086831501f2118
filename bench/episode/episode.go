// Package episode models web-agent episode traces: ordered step records
// loaded from JSONL logs, plus lint-style consistency checking and
// accumulation across trace files.
package episode

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// StepInfo carries the environment's per-step annotations.
type StepInfo struct {
	Success       bool     `json:"success"`
	InvalidAction bool     `json:"invalid_action"`
	Milestones    []string `json:"milestones,omitempty"`
}

// Step is one row of an episode JSONL log. Action is null for no-op steps;
// Mask, when present, is the action mask offered to the agent at that step.
type Step struct {
	Index  int      `json:"index"`
	Action any      `json:"action"`
	Mask   []any    `json:"mask,omitempty"`
	Info   StepInfo `json:"info"`
}

// Episode is one full task attempt.
type Episode struct {
	ID    string
	Steps []Step
}

// FinalScore returns 1 if the last step succeeded, else 0. Empty episodes
// score 0.
func (e *Episode) FinalScore() float64 {
	if len(e.Steps) == 0 {
		return 0
	}
	if e.Steps[len(e.Steps)-1].Info.Success {
		return 1
	}
	return 0
}

// ReadEpisodeFile streams one JSONL episode log into ordered steps. A step
// whose index field is absent gets its line position. Malformed rows are a
// hard error carrying the file and line.
func ReadEpisodeFile(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open episode %s: %w", path, err)
	}
	defer f.Close()

	var steps []Step
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var s Step
		s.Index = -1
		if err := json.Unmarshal(text, &s); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if s.Index < 0 {
			s.Index = len(steps)
		}
		steps = append(steps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read episode %s: %w", path, err)
	}
	return steps, nil
}
