package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"finaltrace/internal/engine"
	"finaltrace/internal/puzzle"
)

// describeCmd prints puzzle metadata, rendered as markdown when possible
var describeCmd = &cobra.Command{
	Use:   "describe <puzzle>",
	Short: "Show a puzzle's description",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errMissingPuzzle
	}
	name := args[0]

	p := puzzle.Default().Get(name)
	if p == nil {
		return fmt.Errorf("%w: %s", engine.ErrPuzzleNotFound, name)
	}
	desc := p.Describe()

	md := fmt.Sprintf("# %s\n\n%s\n", desc.Name, desc.Summary)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain output beats no output when the terminal is hostile.
		fmt.Println(desc.Name)
		fmt.Println(desc.Summary)
		return nil
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(desc.Name)
		fmt.Println(desc.Summary)
		return nil
	}
	fmt.Print(out)
	return nil
}
