package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(project, useCase, task string, seed int64, score float64) DatasetEntry {
	return DatasetEntry{ProjectID: project, UseCase: useCase, TaskID: task, Seed: seed, Score: score}
}

func TestComputeProjectMetrics_Aggregation(t *testing.T) {
	entries := []DatasetEntry{
		entry("shop", "cart", "t1", 1, 1.0),
		entry("shop", "cart", "t2", 1, 0.5),
		entry("shop", "cart", "t3", 1, 0.0),
		entry("blog", "post", "t1", 1, 0.9),
	}
	got := ComputeProjectMetrics(entries, 0.7)
	require.Len(t, got, 2)

	shop := got["shop"]
	assert.Equal(t, 3, shop.Count)
	assert.InDelta(t, 0.5, shop.MeanScore, 1e-12)
	assert.InDelta(t, 1.0/3.0, shop.SuccessRate, 1e-12)
	assert.Zero(t, shop.TimedCount)

	blog := got["blog"]
	assert.Equal(t, 1, blog.Count)
	assert.InDelta(t, 1.0, blog.SuccessRate, 1e-12)
}

func TestComputeProjectMetrics_TimingOnlyOverTimedEntries(t *testing.T) {
	entries := []DatasetEntry{
		{ProjectID: "shop", TaskID: "t1", Score: 1.0, DurationMS: 100},
		{ProjectID: "shop", TaskID: "t2", Score: 1.0, DurationMS: 300},
		{ProjectID: "shop", TaskID: "t3", Score: 1.0}, // no duration recorded
	}
	got := ComputeProjectMetrics(entries, 0.7)
	shop := got["shop"]
	assert.Equal(t, 2, shop.TimedCount)
	assert.InDelta(t, 200, shop.MeanDurationMS, 1e-9)
	assert.InDelta(t, 290, shop.P95DurationMS, 1e-9)
}

func TestComputeProjectMetrics_EmptyInput(t *testing.T) {
	got := ComputeProjectMetrics(nil, 0.7)
	assert.Empty(t, got)
}

func TestSortedProjects_StableOrder(t *testing.T) {
	entries := []DatasetEntry{
		entry("zeta", "u", "t", 1, 0.5),
		entry("alpha", "u", "t", 1, 0.5),
		entry("mid", "u", "t", 1, 0.5),
	}
	sorted := SortedProjects(ComputeProjectMetrics(entries, 0.7))
	require.Len(t, sorted, 3)
	assert.Equal(t, "alpha", sorted[0].ProjectID)
	assert.Equal(t, "mid", sorted[1].ProjectID)
	assert.Equal(t, "zeta", sorted[2].ProjectID)
}

func TestComputeProjectMetrics_ScoreExactlyAtThresholdCounts(t *testing.T) {
	entries := []DatasetEntry{entry("shop", "cart", "t1", 1, 0.7)}
	got := ComputeProjectMetrics(entries, 0.7)
	if math.Abs(got["shop"].SuccessRate-1.0) > 1e-12 {
		t.Errorf("score at threshold should count as success, rate = %v", got["shop"].SuccessRate)
	}
}
