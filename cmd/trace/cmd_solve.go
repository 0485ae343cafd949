package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"finaltrace/internal/engine"
	"finaltrace/internal/puzzle"
)

var (
	solveAnswer      string
	solveInteractive bool
	solvePersist     bool
)

// solveCmd attempts a puzzle with the provided answer
var solveCmd = &cobra.Command{
	Use:   "solve <puzzle>",
	Short: "Attempt to solve a puzzle",
	Long: `Attempts a puzzle with the answer given via --answer.

Answers are coerced in order: integer, even-length hex (becomes bytes),
raw string. With --interactive the command opens a prompt and submits
attempts until the puzzle is solved or the prompt is aborted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveAnswer, "answer", "", "answer payload")
	solveCmd.Flags().BoolVarP(&solveInteractive, "interactive", "i", false, "prompt for answers interactively")
	solveCmd.Flags().BoolVar(&solvePersist, "persist", false, "record attempts in the configured store")
}

func runSolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errMissingPuzzle
	}
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, !solvePersist)
	if err != nil {
		return err
	}
	defer st.Close()
	eng := buildEngine(st)

	if !eng.Has(name) {
		return fmt.Errorf("%w: %s", engine.ErrPuzzleNotFound, name)
	}

	if solveInteractive {
		return runSolveTUI(cmd.Context(), eng, name)
	}

	var answer puzzle.Answer
	if cmd.Flags().Changed("answer") {
		answer = puzzle.ParseAnswer(solveAnswer)
	}

	res, err := eng.Attempt(cmd.Context(), name, answer)
	if err != nil {
		return err
	}

	out, err := json.Marshal(map[string]any{"ok": res.Solved, "message": res.Message})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
