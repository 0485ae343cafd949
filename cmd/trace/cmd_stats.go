package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"finaltrace/cmd/trace/ui"
)

// statsCmd prints attempt statistics from the configured store
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt statistics from the store",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, false)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(ui.TitleStyle.Render("Final-Trace attempt statistics"))
	fmt.Println(ui.Rule(50))
	fmt.Printf("Total attempts: %d\n", stats.TotalAttempts)
	fmt.Printf("Total solved:   %d\n", stats.TotalSolved)

	if len(stats.Counters) == 0 {
		fmt.Println("\nNo attempts recorded yet.")
		return nil
	}

	names := make([]string, 0, len(stats.Counters))
	var max int64
	for name, count := range stats.Counters {
		names = append(names, name)
		if count > max {
			max = count
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if stats.Counters[names[i]] != stats.Counters[names[j]] {
			return stats.Counters[names[i]] > stats.Counters[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Println()
	fmt.Println("Attempts by puzzle:")
	for _, name := range names {
		count := stats.Counters[name]
		fmt.Printf("  %-20s %4d %s\n", name, count, ui.Bar(count, max, 30))
	}
	fmt.Println(ui.Rule(50))
	return nil
}
