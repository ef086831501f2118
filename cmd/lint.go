package cmd

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rewardlab/rewardlab/bench/episode"
)

var (
	noLoopCheck bool   // Disable repeated-action loop penalty counting
	lintConfig  string // Optional yaml config (loop_penalty_check)
)

var lintCmd = &cobra.Command{
	Use:   "lint <episode.jsonl> [more files...]",
	Short: "Lint episode JSONL files and print accumulated statistics",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, loopCheck, err := LoadAnalysisParams(lintConfig)
		if err != nil {
			logrus.Fatalf("Could not load analysis config: %v", err)
		}
		if cmd.Flags().Changed("no-loop-check") {
			loopCheck = !noLoopCheck
		}
		linter := episode.NewLinter(loopCheck)
		for _, path := range args {
			if err := linter.LintFile(path); err != nil {
				logrus.Fatalf("Lint failed: %v", err)
			}
		}
		fmt.Print(FormatLintStats(linter.Stats()))
	},
}

// FormatLintStats renders the accumulated lint counters and histogram.
func FormatLintStats(stats episode.LintStats) string {
	out := fmt.Sprintf(
		"Episode lint\n"+
			"  Files: %d\n"+
			"  Steps: %d (%d null actions, %d invalid)\n"+
			"  Successes: %d, milestones: %d\n"+
			"  Loop penalties: %d\n",
		stats.FilesLinted,
		stats.Steps, stats.NullActions, stats.InvalidActions,
		stats.Successes, stats.Milestones,
		stats.LoopPenalties,
	)
	if len(stats.ActionHistogram) > 0 {
		actions := make([]string, 0, len(stats.ActionHistogram))
		for a := range stats.ActionHistogram {
			actions = append(actions, a)
		}
		sort.Strings(actions)
		out += "  Action histogram:\n"
		for _, a := range actions {
			out += fmt.Sprintf("    %s: %d\n", a, stats.ActionHistogram[a])
		}
	}
	return out
}

func init() {
	lintCmd.Flags().BoolVar(&noLoopCheck, "no-loop-check", false, "Disable loop penalty counting")
	lintCmd.Flags().StringVar(&lintConfig, "config", "", "Optional yaml config with analysis thresholds")
	rootCmd.AddCommand(lintCmd)
}
