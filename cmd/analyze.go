package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rewardlab/rewardlab/bench"
)

var (
	// CLI flags for the analyze command
	analyzeDataset    string  // Path to the dataset JSON/JSONL file
	analyzeConfig     string  // Optional yaml config with analysis thresholds
	analyzeOut        string  // Report output path
	successThreshold  float64 // Score at or above which an attempt counts as success
	trivialFloor      int     // Minimal-action floor for trivial-task flagging
	diversityCutoff   float64 // Action-diversity ratio below which an agent is flagged
	variabilityCutoff float64 // Seed success-rate variance below which a group is flagged
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a benchmark dataset and write the sandbox report",
	Run: func(cmd *cobra.Command, args []string) {
		params, _, err := LoadAnalysisParams(analyzeConfig)
		if err != nil {
			logrus.Fatalf("Could not load analysis config: %v", err)
		}
		if cmd.Flags().Changed("success-threshold") {
			params.SuccessThreshold = successThreshold
		}
		if cmd.Flags().Changed("trivial-action-floor") {
			params.TrivialActionFloor = trivialFloor
		}
		if cmd.Flags().Changed("diversity-cutoff") {
			params.DiversityCutoff = diversityCutoff
		}
		if cmd.Flags().Changed("variability-cutoff") {
			params.VariabilityCutoff = variabilityCutoff
		}

		entries, skipped, err := bench.LoadEntries(analyzeDataset)
		if err != nil {
			logrus.Fatalf("Could not load dataset: %v", err)
		}
		if skipped > 0 {
			logrus.Warnf("Skipped %d entries missing project_id/task_id", skipped)
		}

		report := bench.BuildReport(entries, skipped, params)
		if err := bench.WriteReport(report, analyzeOut); err != nil {
			logrus.Fatalf("Could not write report: %v", err)
		}

		fmt.Print(FormatOverview(report))
		logrus.Infof("Report %s written to %s", report.ReportID, analyzeOut)
	},
}

// FormatOverview renders the human-readable analysis summary.
func FormatOverview(r *bench.Report) string {
	flaggedAgents := 0
	for _, d := range r.AgentDiversity {
		if d.Flagged {
			flaggedAgents++
		}
	}
	deterministic := 0
	for _, v := range r.SeedVariability {
		if v.SuspiciouslyDeterministic {
			deterministic++
		}
	}
	return fmt.Sprintf(
		"Dataset analysis\n"+
			"  Entries: %d (%d skipped)\n"+
			"  Projects: %d\n"+
			"  Mean score: %.3f, success rate: %.1f%%\n"+
			"  Unresolved tasks: %d\n"+
			"  Trivial tasks: %d\n"+
			"  Agents flagged for low diversity: %d of %d\n"+
			"  Suspiciously deterministic groups: %d of %d\n",
		r.Overview.TotalEntries, r.SkippedEntries,
		len(r.Overview.Projects),
		r.Overview.MeanScore, r.Overview.SuccessRate*100,
		len(r.UnresolvedTasks),
		len(r.TrivialTasks),
		flaggedAgents, len(r.AgentDiversity),
		deterministic, len(r.SeedVariability),
	)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDataset, "dataset", "", "Dataset file (JSON array or JSONL)")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Optional yaml config with analysis thresholds")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "report.json", "Report output path")
	analyzeCmd.Flags().Float64Var(&successThreshold, "success-threshold", 0.7, "Score threshold for success")
	analyzeCmd.Flags().IntVar(&trivialFloor, "trivial-action-floor", 3, "Action-count floor for trivial tasks")
	analyzeCmd.Flags().Float64Var(&diversityCutoff, "diversity-cutoff", 0.3, "Diversity ratio cutoff for memorization flagging")
	analyzeCmd.Flags().Float64Var(&variabilityCutoff, "variability-cutoff", 0.02, "Variance cutoff for determinism flagging")
	if err := analyzeCmd.MarkFlagRequired("dataset"); err != nil {
		logrus.Fatalf("analyze command setup: %v", err)
	}
	rootCmd.AddCommand(analyzeCmd)
}
