package episode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinter_HistogramAndCounts(t *testing.T) {
	// Two files, two steps each: one null action, one "click".
	fileA := writeEpisode(t, "a.jsonl",
		`{"action": null, "info": {"success": false, "invalid_action": false}}`,
		`{"action": "click", "info": {"success": true, "invalid_action": false}}`,
	)
	fileB := writeEpisode(t, "b.jsonl",
		`{"action": null, "info": {"success": false, "invalid_action": true}}`,
		`{"action": "click", "info": {"success": true, "invalid_action": false}}`,
	)

	l := NewLinter(true)
	require.NoError(t, l.LintFile(fileA))
	require.NoError(t, l.LintFile(fileB))

	stats := l.Stats()
	assert.Equal(t, 2, stats.FilesLinted)
	assert.Equal(t, 4, stats.Steps)
	assert.Equal(t, 2, stats.NullActions)
	assert.Equal(t, 2, stats.Successes)
	assert.Equal(t, 1, stats.InvalidActions)
	assert.Equal(t, map[string]int{"click": 2}, stats.ActionHistogram)
}

func TestLinter_MaskMismatchIsFatal(t *testing.T) {
	path := writeEpisode(t, "bad.jsonl",
		`{"action": "a", "mask": [1, 1, 0], "info": {}}`,
		`{"action": "b", "mask": [1, 0, 1], "info": {}}`,
		`{"action": "c", "mask": [1, 0, 1, 1], "info": {}}`,
	)
	l := NewLinter(false)
	err := l.LintFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentMask)

	var inc *InconsistencyError
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, 3, inc.Line)
	assert.Equal(t, 3, inc.Want)
	assert.Equal(t, 4, inc.Got)
}

func TestLinter_ConsistentMasksPass(t *testing.T) {
	path := writeEpisode(t, "ok.jsonl",
		`{"action": "a", "mask": [1, 1, 0], "info": {}}`,
		`{"action": "b", "info": {}}`,
		`{"action": "c", "mask": [0, 1, 1], "info": {}}`,
	)
	l := NewLinter(false)
	assert.NoError(t, l.LintFile(path))
}

func TestLinter_MaskLengthsIndependentAcrossFiles(t *testing.T) {
	fileA := writeEpisode(t, "a.jsonl", `{"action": "a", "mask": [1, 1], "info": {}}`)
	fileB := writeEpisode(t, "b.jsonl", `{"action": "a", "mask": [1, 1, 1], "info": {}}`)
	l := NewLinter(false)
	require.NoError(t, l.LintFile(fileA))
	assert.NoError(t, l.LintFile(fileB))
}

func TestLinter_LoopPenalties(t *testing.T) {
	steps := []Step{
		{Action: "click", Info: StepInfo{}},
		{Action: "click", Info: StepInfo{}},       // repeat without success
		{Action: "click", Info: StepInfo{Success: true}}, // repeat but succeeded
		{Action: "type", Info: StepInfo{}},
	}
	l := NewLinter(true)
	require.NoError(t, l.LintSteps("ep", steps))
	assert.Equal(t, 1, l.Stats().LoopPenalties)

	off := NewLinter(false)
	require.NoError(t, off.LintSteps("ep", steps))
	assert.Zero(t, off.Stats().LoopPenalties)
}

func TestActionName(t *testing.T) {
	tests := []struct {
		name   string
		action any
		want   string
	}{
		{name: "string verbatim", action: "click", want: "click"},
		{name: "structured with name", action: map[string]any{"name": "click", "x": 1.0}, want: "click"},
		{name: "structured with type", action: map[string]any{"type": "scroll"}, want: "scroll"},
		{name: "structured without either", action: map[string]any{"dx": 5.0}, want: `{"dx":5}`},
		{name: "number", action: 3.0, want: "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionName(tt.action))
		})
	}
}
