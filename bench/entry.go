// Package bench analyzes datasets of web-agent benchmark runs: per-project
// aggregation, unresolved/trivial task detection, agent memorization
// flagging, and seed-variability checks. All analysis functions are pure
// over their inputs and safe to run across dataset shards in parallel.
package bench

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DatasetEntry is one task attempt produced by a benchmark run. Entries are
// immutable once loaded.
type DatasetEntry struct {
	ProjectID   string   `json:"project_id"`
	UseCase     string   `json:"use_case"`
	TaskID      string   `json:"task_id"`
	Seed        int64    `json:"seed"`
	Score       float64  `json:"score"` // in [0, 1]
	AgentID     string   `json:"agent_id,omitempty"`
	Actions     []string `json:"actions,omitempty"`
	ActionCount int      `json:"action_count,omitempty"`
	DurationMS  float64  `json:"duration,omitempty"` // optional, milliseconds
}

// TaskKey identifies one task group across seeds and agents.
type TaskKey struct {
	ProjectID string `json:"project_id"`
	UseCase   string `json:"use_case"`
	TaskID    string `json:"task_id"`
}

// BasisKey identifies one seed-variability group.
type BasisKey struct {
	ProjectID string `json:"project_id"`
	Basis     string `json:"basis"` // grouping key within the project (use case)
}

// Key returns the entry's task group key.
func (e *DatasetEntry) Key() TaskKey {
	return TaskKey{ProjectID: e.ProjectID, UseCase: e.UseCase, TaskID: e.TaskID}
}

// EffectiveActionCount returns action_count, defaulting to len(actions)
// when the explicit field is absent.
func (e *DatasetEntry) EffectiveActionCount() int {
	if e.ActionCount > 0 {
		return e.ActionCount
	}
	return len(e.Actions)
}

// valid reports whether the entry carries the required identity fields.
func (e *DatasetEntry) valid() bool {
	return e.ProjectID != "" && e.TaskID != ""
}

// LoadEntries reads dataset entries from a JSON array file or a JSONL file,
// auto-detected from the first non-space byte. Entries missing required
// identity fields are skipped; the skip count is surfaced to the caller.
func LoadEntries(path string) ([]DatasetEntry, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset %s: %w", path, err)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raw []DatasetEntry
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, 0, fmt.Errorf("parse dataset %s: %w", path, err)
		}
		entries, skipped := filterEntries(raw)
		logrus.Debugf("loaded %d entries from %s (%d skipped)", len(entries), path, skipped)
		return entries, skipped, nil
	}
	entries, skipped, err := DecodeEntries(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	logrus.Debugf("loaded %d entries from %s (%d skipped)", len(entries), path, skipped)
	return entries, skipped, nil
}

// DecodeEntries streams JSONL dataset entries from r. Blank lines are
// ignored; a malformed line is a hard error with its line number.
func DecodeEntries(r io.Reader) ([]DatasetEntry, int, error) {
	var raw []DatasetEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var e DatasetEntry
		if err := json.Unmarshal(text, &e); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}
		raw = append(raw, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	entries, skipped := filterEntries(raw)
	return entries, skipped, nil
}

func filterEntries(raw []DatasetEntry) ([]DatasetEntry, int) {
	entries := make([]DatasetEntry, 0, len(raw))
	skipped := 0
	for _, e := range raw {
		if !e.valid() {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped
}
