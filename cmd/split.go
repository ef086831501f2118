package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rewardlab/rewardlab/bench/episode"
	"github.com/rewardlab/rewardlab/bench/split"
)

var (
	// CLI flags for the split command
	splitEpisodes string  // Episode JSONL file or directory of them
	splitOut      string  // Output directory for the split layout
	splitTrain    float64 // Train proportion
	splitVal      float64 // Val proportion; test takes the remainder
	splitSeed     int64   // Shuffle seed, fixed for reproducibility
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Deterministically partition episodes into train/val/test",
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := collectEpisodeFiles(splitEpisodes)
		if err != nil {
			logrus.Fatalf("Could not list episodes: %v", err)
		}

		ids := make([]string, 0, len(paths))
		stepCounts := make(map[string]int, len(paths))
		finalScores := make(map[string]float64, len(paths))
		for _, path := range paths {
			steps, err := episode.ReadEpisodeFile(path)
			if err != nil {
				logrus.Fatalf("Could not read episode: %v", err)
			}
			ep := episode.Episode{ID: episodeID(path), Steps: steps}
			ids = append(ids, ep.ID)
			stepCounts[ep.ID] = len(steps)
			finalScores[ep.ID] = ep.FinalScore()
		}

		res, err := split.SplitEpisodes(ids, stepCounts, finalScores,
			split.Proportions{Train: splitTrain, Val: splitVal}, splitSeed)
		if err != nil {
			logrus.Fatalf("Split failed: %v", err)
		}
		if err := split.WriteSplits(splitOut, res); err != nil {
			logrus.Fatalf("Could not write splits: %v", err)
		}
		logrus.Infof("Split %d episodes into train=%d val=%d test=%d under %s",
			len(ids), len(res.Episodes["train"]), len(res.Episodes["val"]),
			len(res.Episodes["test"]), splitOut)
	},
}

// collectEpisodeFiles returns the .jsonl files under path, or path itself
// when it is a file.
func collectEpisodeFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".jsonl") {
			continue
		}
		paths = append(paths, filepath.Join(path, de.Name()))
	}
	return paths, nil
}

// episodeID derives the episode id from a trace file name.
func episodeID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	splitCmd.Flags().StringVar(&splitEpisodes, "episodes", "", "Episode JSONL file or directory")
	splitCmd.Flags().StringVar(&splitOut, "out", "splits", "Output directory")
	splitCmd.Flags().Float64Var(&splitTrain, "train", 0.8, "Train proportion")
	splitCmd.Flags().Float64Var(&splitVal, "val", 0.1, "Val proportion (test takes the remainder)")
	splitCmd.Flags().Int64Var(&splitSeed, "seed", 17, "Shuffle seed")
	if err := splitCmd.MarkFlagRequired("episodes"); err != nil {
		logrus.Fatalf("split command setup: %v", err)
	}
	rootCmd.AddCommand(splitCmd)
}
