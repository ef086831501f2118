// Package split deterministically partitions episode datasets into
// train/val/test index sets for reward-model training, deriving per-step
// semantic id lists and final-step reward labels alongside the episode
// partition.
package split

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrEmptyDataset indicates there were no episodes to partition.
var ErrEmptyDataset = errors.New("split: empty dataset")

// SplitNames are the output partitions, in assignment order.
var SplitNames = []string{"train", "val", "test"}

// Proportions configures the partition sizes. Test takes the remainder, so
// Train+Val need not sum to 1; summing past 1 is invalid.
type Proportions struct {
	Train float64
	Val   float64
}

// Validate rejects negative or over-committed proportions.
func (p Proportions) Validate() error {
	if p.Train < 0 || p.Val < 0 {
		return fmt.Errorf("split proportions must be non-negative, got train=%v val=%v", p.Train, p.Val)
	}
	if p.Train+p.Val > 1 {
		return fmt.Errorf("split proportions sum to %v, must not exceed 1", p.Train+p.Val)
	}
	return nil
}

// Final is one reward-label row: the semantic id of an episode's last step
// and its binary success label.
type Final struct {
	RID      string `json:"rid"`
	YSuccess int    `json:"y_success"`
}

// SplitResult holds, per partition, the episode ids, the per-step semantic
// ids, and the final-step labels.
type SplitResult struct {
	Episodes map[string][]string
	Semantic map[string][]string
	Finals   map[string][]Final
	Seed     int64
}

// SemanticID renders the per-step id for one step of an episode.
func SemanticID(episodeID string, stepIndex int) string {
	return fmt.Sprintf("%s_%d", episodeID, stepIndex)
}

// SplitEpisodes partitions episode ids with a seeded shuffle. The input is
// sorted before shuffling so the partition depends only on the id set and
// the seed, never on input order. stepCounts gives each episode's step
// count (for semantic ids); finalScores gives each episode's final score
// (label = 1 iff score > 0.5). Episodes absent from either map default to
// zero steps / score 0.
func SplitEpisodes(ids []string, stepCounts map[string]int, finalScores map[string]float64, p Proportions, seed int64) (*SplitResult, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	sort.Strings(shuffled)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	trainEnd := int(float64(n) * p.Train)
	valEnd := trainEnd + int(float64(n)*p.Val)
	bounds := map[string][2]int{
		"train": {0, trainEnd},
		"val":   {trainEnd, valEnd},
		"test":  {valEnd, n}, // remainder
	}

	res := &SplitResult{
		Episodes: make(map[string][]string, len(SplitNames)),
		Semantic: make(map[string][]string, len(SplitNames)),
		Finals:   make(map[string][]Final, len(SplitNames)),
		Seed:     seed,
	}
	for _, name := range SplitNames {
		b := bounds[name]
		members := shuffled[b[0]:b[1]]
		res.Episodes[name] = append([]string{}, members...)

		semantic := []string{}
		finals := []Final{}
		for _, id := range members {
			steps := stepCounts[id]
			for step := 0; step < steps; step++ {
				semantic = append(semantic, SemanticID(id, step))
			}
			lastStep := steps - 1
			if lastStep < 0 {
				lastStep = 0
			}
			label := 0
			if finalScores[id] > 0.5 {
				label = 1
			}
			finals = append(finals, Final{RID: SemanticID(id, lastStep), YSuccess: label})
		}
		res.Semantic[name] = semantic
		res.Finals[name] = finals
	}

	logrus.Debugf("split %d episodes (seed=%d): train=%d val=%d test=%d",
		n, seed, trainEnd, valEnd-trainEnd, n-valEnd)
	return res, nil
}

// WriteSplits writes the split layout under dir: {split}.json with episode
// ids, semantic_{split}.json with per-step ids, and {split}_finals.json
// with reward labels.
func WriteSplits(dir string, res *SplitResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create split dir %s: %w", dir, err)
	}
	for _, name := range SplitNames {
		files := map[string]any{
			name + ".json":              res.Episodes[name],
			"semantic_" + name + ".json": res.Semantic[name],
			name + "_finals.json":       res.Finals[name],
		}
		for file, payload := range files {
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal %s: %w", file, err)
			}
			if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
		}
	}
	return nil
}
