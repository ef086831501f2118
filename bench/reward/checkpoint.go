package reward

import (
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Checkpoint is the on-disk manifest for a trained linear scoring head.
type Checkpoint struct {
	Dimension      int       `yaml:"dimension"`
	RewardWeights  []float64 `yaml:"reward_weights"`
	RewardBias     float64   `yaml:"reward_bias"`
	SuccessWeights []float64 `yaml:"success_weights"`
	SuccessBias    float64   `yaml:"success_bias"`
}

// LoadCheckpoint reads a yaml checkpoint manifest and returns a ready
// LinearScorer. A missing or malformed file wraps ErrMissingCheckpoint so
// callers can distinguish this fatal condition.
func LoadCheckpoint(path string) (*LinearScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %v: %w", path, err, ErrMissingCheckpoint)
	}
	var ckpt Checkpoint
	if err := yaml.Unmarshal(data, &ckpt); err != nil {
		return nil, fmt.Errorf("parse checkpoint %s: %v: %w", path, err, ErrMissingCheckpoint)
	}
	if ckpt.Dimension <= 0 {
		return nil, fmt.Errorf("checkpoint %s: non-positive dimension %d: %w", path, ckpt.Dimension, ErrMissingCheckpoint)
	}
	if len(ckpt.RewardWeights) != ckpt.Dimension || len(ckpt.SuccessWeights) != ckpt.Dimension {
		return nil, fmt.Errorf("checkpoint %s: weight length mismatch (dim=%d, reward=%d, success=%d): %w",
			path, ckpt.Dimension, len(ckpt.RewardWeights), len(ckpt.SuccessWeights), ErrMissingCheckpoint)
	}
	return &LinearScorer{ckpt: ckpt}, nil
}

// LinearScorer scores encodings with two linear heads: a raw dot product
// for the scalar reward and a sigmoid-squashed dot product for the success
// probability.
type LinearScorer struct {
	ckpt Checkpoint
}

// Dimension returns the encoding length the checkpoint was trained for.
func (s *LinearScorer) Dimension() int { return s.ckpt.Dimension }

// Score evaluates one encoding. The vector length must match the checkpoint
// dimension.
func (s *LinearScorer) Score(vec []float64) (Score, error) {
	if len(vec) != s.ckpt.Dimension {
		return Score{}, fmt.Errorf("encoding dimension %d, checkpoint expects %d", len(vec), s.ckpt.Dimension)
	}
	r := s.ckpt.RewardBias
	logit := s.ckpt.SuccessBias
	for i, v := range vec {
		r += s.ckpt.RewardWeights[i] * v
		logit += s.ckpt.SuccessWeights[i] * v
	}
	return Score{R: r, PSuccess: sigmoid(logit)}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// HashEncoder is a deterministic bag-of-tokens encoder: each whitespace
// token of the observation is FNV-hashed into one of Dimension buckets and
// the bucket counts are L2-normalized. It needs no external model, which
// makes it the default encoder for CLI use and tests.
type HashEncoder struct {
	Dimension int
}

// NewHashEncoder returns a HashEncoder of the given dimension.
func NewHashEncoder(dim int) (*HashEncoder, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("hash encoder dimension must be positive, got %d", dim)
	}
	return &HashEncoder{Dimension: dim}, nil
}

// Encode hashes the url, html text, and optional semantic hint into a
// fixed-length vector. Identical inputs always produce identical vectors.
func (e *HashEncoder) Encode(url, htmlText, semanticHint string) ([]float64, error) {
	vec := make([]float64, e.Dimension)
	for _, field := range []string{url, htmlText, semanticHint} {
		for _, tok := range strings.Fields(field) {
			h := fnv.New64a()
			h.Write([]byte(tok))
			vec[h.Sum64()%uint64(e.Dimension)]++
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
