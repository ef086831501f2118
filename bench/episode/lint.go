package episode

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

// ErrInconsistentMask indicates steps within one episode file disagree on
// mask length. This is data corruption in the upstream trace, not a
// recoverable condition.
var ErrInconsistentMask = errors.New("episode: inconsistent mask length")

// InconsistencyError reports where a mask-length mismatch was found.
type InconsistencyError struct {
	File string
	Line int // 1-based step position within the file
	Want int // mask length established earlier in the file
	Got  int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s step %d: mask length %d, earlier steps have %d: %s",
		e.File, e.Line, e.Got, e.Want, ErrInconsistentMask)
}

func (e *InconsistencyError) Unwrap() error { return ErrInconsistentMask }

// LintStats accumulates counts across linted episode files.
type LintStats struct {
	FilesLinted     int            `json:"files_linted"`
	Steps           int            `json:"steps"`
	NullActions     int            `json:"null_actions"`
	Successes       int            `json:"successes"`
	InvalidActions  int            `json:"invalid_actions"`
	LoopPenalties   int            `json:"loop_penalties"`
	Milestones      int            `json:"milestones"`
	ActionHistogram map[string]int `json:"action_histogram"`
}

// Linter accumulates statistics over episode files and enforces per-file
// mask consistency.
type Linter struct {
	stats     LintStats
	loopCheck bool
}

// NewLinter returns a Linter. loopCheck enables counting of repeated
// non-succeeding actions as loop penalties.
func NewLinter(loopCheck bool) *Linter {
	return &Linter{
		stats:     LintStats{ActionHistogram: make(map[string]int)},
		loopCheck: loopCheck,
	}
}

// LintFile reads and accumulates one episode file. A mask-length mismatch
// aborts with an *InconsistencyError; the run is not continuable past it.
func (l *Linter) LintFile(path string) error {
	steps, err := ReadEpisodeFile(path)
	if err != nil {
		return err
	}
	if err := l.LintSteps(path, steps); err != nil {
		return err
	}
	logrus.Debugf("linted %s: %d steps", path, len(steps))
	return nil
}

// LintSteps accumulates one episode's steps under the given file label.
func (l *Linter) LintSteps(file string, steps []Step) error {
	maskLen := -1
	var prevAction any
	for i, s := range steps {
		if s.Mask != nil {
			if maskLen < 0 {
				maskLen = len(s.Mask)
			} else if len(s.Mask) != maskLen {
				return &InconsistencyError{File: file, Line: i + 1, Want: maskLen, Got: len(s.Mask)}
			}
		}

		l.stats.Steps++
		if s.Action == nil {
			l.stats.NullActions++
		} else {
			l.stats.ActionHistogram[ActionName(s.Action)]++
			if l.loopCheck && i > 0 && !s.Info.Success && reflect.DeepEqual(s.Action, prevAction) {
				l.stats.LoopPenalties++
			}
		}
		if s.Info.Success {
			l.stats.Successes++
		}
		if s.Info.InvalidAction {
			l.stats.InvalidActions++
		}
		l.stats.Milestones += len(s.Info.Milestones)
		prevAction = s.Action
	}
	l.stats.FilesLinted++
	return nil
}

// Stats returns the accumulated counts.
func (l *Linter) Stats() LintStats { return l.stats }

// ActionName renders an action for histogramming: string actions verbatim,
// structured actions by their "name" or "type" field when present, anything
// else by its compact JSON form.
func ActionName(action any) string {
	switch a := action.(type) {
	case string:
		return a
	case map[string]any:
		for _, field := range []string{"name", "type"} {
			if v, ok := a[field].(string); ok && v != "" {
				return v
			}
		}
	}
	data, err := json.Marshal(action)
	if err != nil {
		return fmt.Sprintf("%v", action)
	}
	return string(data)
}
