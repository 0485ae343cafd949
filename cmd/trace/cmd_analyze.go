package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"finaltrace/internal/analysis"
)

var (
	analyzePerPuzzle int
	analyzeJSONOnly  bool
)

// analyzeCmd exercises the engine with deterministic samples and reports
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run sample attempts and print analytics reports",
	Long: `Generates deterministic sample answers for every registered puzzle,
runs them through the engine, and prints a text report, a JSON summary,
and a message inspection (fingerprint -> stats).`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzePerPuzzle, "per-puzzle", 0, "samples per puzzle (defaults to config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSONOnly, "json", false, "print only the JSON summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, true)
	if err != nil {
		return err
	}
	defer st.Close()

	collector := analysis.NewCollector(buildEngine(st))
	collector.SetParallelism(cfg.Analysis.Parallelism)

	perPuzzle := analyzePerPuzzle
	if perPuzzle <= 0 {
		perPuzzle = cfg.Analysis.PerPuzzle
	}

	samples := collector.SampleFromRegistry(perPuzzle)
	if _, err := collector.RunSamples(cmd.Context(), samples); err != nil {
		return fmt.Errorf("sample run failed: %w", err)
	}

	jsonReport, err := collector.JSONReport(true)
	if err != nil {
		return err
	}

	if analyzeJSONOnly {
		fmt.Println(jsonReport)
		return nil
	}

	fmt.Println(analysis.TextReport(collector.Summarize()))
	fmt.Println("JSON Summary:")
	fmt.Println()
	fmt.Println(jsonReport)

	detailed, err := json.MarshalIndent(collector.Inspect(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Message inspection (fingerprint -> stats):")
	fmt.Println()
	fmt.Println(string(detailed))
	return nil
}
