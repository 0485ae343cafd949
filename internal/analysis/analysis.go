// Package analysis exercises the engine with sample attempts and aggregates
// runtime metrics into compact JSON and text reports.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"finaltrace/internal/cryptoutil"
	"finaltrace/internal/engine"
	"finaltrace/internal/logging"
	"finaltrace/internal/puzzle"
	"finaltrace/internal/textutil"
)

// AttemptRecord summarizes a single recorded attempt.
type AttemptRecord struct {
	Puzzle   string        `json:"puzzle"`
	Answer   string        `json:"answer"`
	Solved   bool          `json:"ok"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"ts"`
}

// Sample pairs a puzzle name with an answer to try.
type Sample struct {
	Puzzle string
	Answer puzzle.Answer
}

// Collector runs attempts against an engine and keeps lightweight
// summaries rather than raw payloads, so reports stay compact.
type Collector struct {
	engine      *engine.Engine
	parallelism int

	mu       sync.Mutex
	attempts []AttemptRecord
	counts   map[string]int
}

// NewCollector creates a collector over the given engine.
func NewCollector(e *engine.Engine) *Collector {
	return &Collector{
		engine:      e,
		parallelism: 4,
		counts:      make(map[string]int),
	}
}

// SetParallelism bounds how many samples RunSamples runs at once.
func (c *Collector) SetParallelism(n int) {
	if n > 0 {
		c.parallelism = n
	}
}

// Record runs a single attempt against the engine and records the result.
func (c *Collector) Record(ctx context.Context, puzzleName string, answer puzzle.Answer) (AttemptRecord, error) {
	start := time.Now()
	res, err := c.engine.Attempt(ctx, puzzleName, answer)
	if err != nil {
		return AttemptRecord{}, err
	}

	rec := AttemptRecord{
		Puzzle:   puzzleName,
		Answer:   answer.String(),
		Solved:   res.Solved,
		Message:  res.Message,
		Duration: time.Since(start),
		At:       start,
	}

	c.mu.Lock()
	c.attempts = append(c.attempts, rec)
	c.counts[puzzleName]++
	c.mu.Unlock()

	return rec, nil
}

// RunSamples runs a sequence of samples with bounded parallelism. Samples
// naming unknown puzzles are skipped gracefully.
func (c *Collector) RunSamples(ctx context.Context, samples []Sample) ([]AttemptRecord, error) {
	timer := logging.StartTimer(logging.CategoryAnalysis, "RunSamples")
	defer timer.Stop()

	results := make([]*AttemptRecord, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i, s := range samples {
		g.Go(func() error {
			rec, err := c.Record(gctx, s.Puzzle, s.Answer)
			if err != nil {
				if errors.Is(err, engine.ErrPuzzleNotFound) {
					logging.Analysis("Skipping unknown puzzle %q", s.Puzzle)
					return nil
				}
				return err
			}
			results[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]AttemptRecord, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// SampleFromRegistry generates deterministic sample inputs for each
// registered puzzle. Answers derive from a stable hash of the puzzle name,
// so runs are repeatable while still exercising varied inputs.
func (c *Collector) SampleFromRegistry(perPuzzle int) []Sample {
	var samples []Sample
	for _, name := range c.engine.List() {
		base := cryptoutil.IteratedHash([]byte(name), 2)[:8]
		for i := 0; i < perPuzzle; i++ {
			samples = append(samples, Sample{
				Puzzle: name,
				Answer: puzzle.StringAnswer(fmt.Sprintf("%s-%d", base, i)),
			})
		}
	}
	return samples
}

// Attempts returns a copy of the collected records.
func (c *Collector) Attempts() []AttemptRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]AttemptRecord, len(c.attempts))
	copy(out, c.attempts)
	return out
}

// NameCount is a (name, count) pair used in rankings.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PuzzleSummary aggregates the attempts against one puzzle.
type PuzzleSummary struct {
	Attempts       int           `json:"attempts"`
	Successes      int           `json:"successes"`
	DurationMean   time.Duration `json:"duration_mean"`
	DurationMedian time.Duration `json:"duration_p50"`
	CommonMessages []NameCount   `json:"common_messages"` // top 3
}

// OverallSummary aggregates across all puzzles.
type OverallSummary struct {
	TotalAttempts int         `json:"total_attempts"`
	UniquePuzzles int         `json:"unique_puzzles"`
	TopPuzzles    []NameCount `json:"top_puzzles"` // top 10 by attempts
}

// Summary is the full report payload.
type Summary struct {
	Overall OverallSummary           `json:"overall"`
	Puzzles map[string]PuzzleSummary `json:"puzzles"`
}

// Summarize produces aggregated metrics about the collected attempts.
func (c *Collector) Summarize() Summary {
	attempts := c.Attempts()

	byPuzzle := make(map[string][]AttemptRecord)
	for _, a := range attempts {
		byPuzzle[a.Puzzle] = append(byPuzzle[a.Puzzle], a)
	}

	puzzles := make(map[string]PuzzleSummary, len(byPuzzle))
	for name, recs := range byPuzzle {
		durations := make([]time.Duration, 0, len(recs))
		messages := make(map[string]int)
		successes := 0
		for _, r := range recs {
			durations = append(durations, r.Duration)
			messages[r.Message]++
			if r.Solved {
				successes++
			}
		}
		puzzles[name] = PuzzleSummary{
			Attempts:       len(recs),
			Successes:      successes,
			DurationMean:   meanDuration(durations),
			DurationMedian: medianDuration(durations),
			CommonMessages: topCounts(messages, 3),
		}
	}

	c.mu.Lock()
	counts := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}
	c.mu.Unlock()

	return Summary{
		Overall: OverallSummary{
			TotalAttempts: len(attempts),
			UniquePuzzles: len(byPuzzle),
			TopPuzzles:    topCounts(counts, 10),
		},
		Puzzles: puzzles,
	}
}

// JSONReport returns the summary as a JSON string.
func (c *Collector) JSONReport(pretty bool) (string, error) {
	s := c.Summarize()
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}

// topCounts ranks count maps, highest first; ties break alphabetically so
// reports are deterministic.
func topCounts(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func meanDuration(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

func medianDuration(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// asciiBar returns a bar scaled to count/maxCount, width characters wide.
func asciiBar(count, maxCount, width int) string {
	if maxCount <= 0 {
		return ""
	}
	filled := count * width / maxCount
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

// TextReport generates a compact human-readable report from a summary.
func TextReport(s Summary) string {
	var b strings.Builder
	b.WriteString("Final-Trace Analytics Report\n")
	fmt.Fprintf(&b, "Total attempts: %d\n", s.Overall.TotalAttempts)
	fmt.Fprintf(&b, "Unique puzzles exercised: %d\n", s.Overall.UniquePuzzles)

	if len(s.Overall.TopPuzzles) > 0 {
		maxCount := s.Overall.TopPuzzles[0].Count
		b.WriteString("\nTop puzzles by attempts:\n")
		for _, nc := range s.Overall.TopPuzzles {
			fmt.Fprintf(&b, " - %-20s %4d %s\n", nc.Name, nc.Count, asciiBar(nc.Count, maxCount, 40))
		}
	}

	b.WriteString("\nPer-puzzle summary (name: attempts/success/mean-dur):\n")
	names := make([]string, 0, len(s.Puzzles))
	for name := range s.Puzzles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Puzzles[names[i]].Attempts != s.Puzzles[names[j]].Attempts {
			return s.Puzzles[names[i]].Attempts > s.Puzzles[names[j]].Attempts
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		p := s.Puzzles[name]
		fmt.Fprintf(&b, " - %-20s %4d/%3d   mean=%v\n", name, p.Attempts, p.Successes, p.DurationMean)
	}

	return b.String()
}

// MessageStat captures how often a distinct message appeared and how
// unusual its text looks.
type MessageStat struct {
	Count      int      `json:"count"`
	Examples   []string `json:"examples"` // at most 3, for compactness
	MaxEntropy float64  `json:"max_entropy"`
}

// Inspect fingerprints attempt messages and scores their entropy so a
// report can surface atypical or high-entropy outputs.
func (c *Collector) Inspect() map[string]MessageStat {
	stats := make(map[string]MessageStat)
	for _, a := range c.Attempts() {
		key := cryptoutil.Fingerprint(a.Message)
		ent := textutil.Entropy(a.Message)

		st := stats[key]
		st.Count++
		if len(st.Examples) < 3 {
			st.Examples = append(st.Examples, a.Message)
		}
		if ent > st.MaxEntropy {
			st.MaxEntropy = ent
		}
		stats[key] = st
	}
	return stats
}
