package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"finaltrace/internal/puzzle"
)

// seedCmd generates mock attempts, useful for pre-populating a store or
// producing sample run logs
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate mock attempts for every puzzle",
	Long: `Runs a fixed attempt sequence against every registered puzzle: first a
known-bad answer, then a plausible one. Results are printed as JSON.
Pass --db (or configure a sqlite store) to persist the attempts.`,
	RunE: runSeed,
}

type seedResult struct {
	Puzzle  string `json:"puzzle"`
	Answer  string `json:"answer"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Persist only when the user pointed at a database explicitly.
	st, err := openStore(cfg, dbPath == "" && cfg.Store.Backend != "sqlite")
	if err != nil {
		return err
	}
	defer st.Close()
	eng := buildEngine(st)

	answers := []string{"badanswer", "33"}

	var results []seedResult
	for _, name := range eng.List() {
		for _, raw := range answers {
			res, err := eng.Attempt(cmd.Context(), name, puzzle.ParseAnswer(raw))
			if err != nil {
				return err
			}
			results = append(results, seedResult{
				Puzzle:  name,
				Answer:  raw,
				OK:      res.Solved,
				Message: res.Message,
			})
		}
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
