package reward

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCheckpoint(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCheckpoint_MissingFileIsFatal(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrMissingCheckpoint)
}

func TestLoadCheckpoint_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "{{{"},
		{name: "zero dimension", content: "dimension: 0\n"},
		{
			name: "weight length mismatch",
			content: "dimension: 3\nreward_weights: [1.0, 2.0]\nsuccess_weights: [0.0, 0.0, 0.0]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCheckpoint(writeCheckpoint(t, tt.content))
			assert.ErrorIs(t, err, ErrMissingCheckpoint)
		})
	}
}

func TestLinearScorer_ScoreHeads(t *testing.T) {
	path := writeCheckpoint(t, `
dimension: 2
reward_weights: [1.0, -1.0]
reward_bias: 0.5
success_weights: [0.0, 0.0]
success_bias: 0.0
`)
	scorer, err := LoadCheckpoint(path)
	require.NoError(t, err)

	got, err := scorer.Score([]float64{2.0, 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.R, 1e-12)       // 0.5 + 2 - 1
	assert.InDelta(t, 0.5, got.PSuccess, 1e-12) // sigmoid(0)
}

func TestLinearScorer_DimensionMismatch(t *testing.T) {
	path := writeCheckpoint(t, "dimension: 2\nreward_weights: [1, 1]\nsuccess_weights: [1, 1]\n")
	scorer, err := LoadCheckpoint(path)
	require.NoError(t, err)
	_, err = scorer.Score([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestHashEncoder_Deterministic(t *testing.T) {
	enc, err := NewHashEncoder(32)
	require.NoError(t, err)
	a, err := enc.Encode("http://shop/cart", "<div>add to cart</div>", "buy milk")
	require.NoError(t, err)
	b, err := enc.Encode("http://shop/cart", "<div>add to cart</div>", "buy milk")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestHashEncoder_DistinctInputsDiffer(t *testing.T) {
	enc, err := NewHashEncoder(32)
	require.NoError(t, err)
	a, err := enc.Encode("http://shop/cart", "checkout page", "")
	require.NoError(t, err)
	b, err := enc.Encode("http://shop/login", "password form", "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashEncoder_UnitNorm(t *testing.T) {
	enc, err := NewHashEncoder(8)
	require.NoError(t, err)
	vec, err := enc.Encode("http://a", "one two three", "")
	require.NoError(t, err)
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestHashEncoder_RejectsNonPositiveDimension(t *testing.T) {
	_, err := NewHashEncoder(0)
	assert.Error(t, err)
}
