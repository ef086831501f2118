package reward

import (
	"errors"
	"fmt"
)

// ErrMissingCheckpoint indicates the scoring model backing a Blender could
// not be loaded. Shaped rewards without a valid model are meaningless, so
// construction fails rather than degrading.
var ErrMissingCheckpoint = errors.New("reward: scoring checkpoint unavailable")

// Score is one evaluation of an observation encoding.
type Score struct {
	R        float64 // learned scalar reward
	PSuccess float64 // estimated success probability, in [0, 1]
}

// Encoder turns raw observation text into a fixed-length numeric vector.
// Implementations must be deterministic: identical inputs yield identical
// vectors.
type Encoder interface {
	Encode(url, htmlText, semanticHint string) ([]float64, error)
}

// Scorer evaluates an observation encoding. Implementations wrap a trained
// model; LinearScorer in this package is the checkpoint-backed default.
type Scorer interface {
	Score(vec []float64) (Score, error)
}

// BlenderConfig groups shaping coefficients for NewBlender.
type BlenderConfig struct {
	CheckpointPath string  // provenance only; the Scorer is injected already loaded
	Alpha          float64 // weight on the learned scalar reward (default 0.3)
	Beta           float64 // weight on the potential-based shaping term (default 0.2)
	Gamma          float64 // discount factor, must match the RL discount (default 0.99)
}

// DefaultBlenderConfig returns the coefficients used when a field is zero.
func DefaultBlenderConfig() BlenderConfig {
	return BlenderConfig{Alpha: 0.3, Beta: 0.2, Gamma: 0.99}
}

// Blender turns a per-step binary task-success signal into a shaped scalar
// reward:
//
//	shaped = binary + alpha*R + beta*(gamma*phi - prevPhi)
//
// The shaping term is potential-based: over a full episode the intermediate
// terms telescope away, so the optimal policy of the underlying MDP is
// preserved when gamma matches the RL discount factor.
//
// prevPhi persists across steps of one episode and must not leak across
// episodes: callers must invoke Reset at every episode boundary.
type Blender struct {
	cfg     BlenderConfig
	encoder Encoder
	scorer  Scorer
	prevPhi float64
}

// NewBlender constructs a Blender around an injected encoder and scorer.
// Both are required; a nil dependency fails construction.
func NewBlender(cfg BlenderConfig, enc Encoder, scorer Scorer) (*Blender, error) {
	if enc == nil {
		return nil, fmt.Errorf("reward: nil encoder: %w", ErrMissingCheckpoint)
	}
	if scorer == nil {
		return nil, fmt.Errorf("reward: nil scorer: %w", ErrMissingCheckpoint)
	}
	def := DefaultBlenderConfig()
	if cfg.Alpha == 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.Beta == 0 {
		cfg.Beta = def.Beta
	}
	if cfg.Gamma == 0 {
		cfg.Gamma = def.Gamma
	}
	return &Blender{cfg: cfg, encoder: enc, scorer: scorer}, nil
}

// StepReward shapes one step's binary reward using the current observation.
func (b *Blender) StepReward(url, htmlText string, binaryReward float64, semanticHint string) (float64, error) {
	vec, err := b.encoder.Encode(url, htmlText, semanticHint)
	if err != nil {
		return 0, fmt.Errorf("encode observation: %w", err)
	}
	score, err := b.scorer.Score(vec)
	if err != nil {
		return 0, fmt.Errorf("score observation: %w", err)
	}
	phi := score.PSuccess
	shaped := binaryReward + b.cfg.Alpha*score.R + b.cfg.Beta*(b.cfg.Gamma*phi-b.prevPhi)
	b.prevPhi = phi
	return shaped, nil
}

// Reset clears per-episode state. Call at every episode boundary; omitting
// it corrupts the shaping term of the next episode's first step.
func (b *Blender) Reset() {
	b.prevPhi = 0
}

// PrevPhi returns the potential carried from the last scored step.
func (b *Blender) PrevPhi() float64 { return b.prevPhi }
