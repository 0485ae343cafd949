package analysis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaltrace/internal/engine"
	"finaltrace/internal/puzzle"
	"finaltrace/internal/store"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })
	return NewCollector(engine.New(puzzle.Default(), st))
}

func TestSampleFromRegistryDeterministic(t *testing.T) {
	c := newTestCollector(t)

	s1 := c.SampleFromRegistry(3)
	s2 := c.SampleFromRegistry(3)
	if diff := cmp.Diff(s1, s2, cmp.AllowUnexported(puzzle.Answer{})); diff != "" {
		t.Errorf("samples not deterministic (-first +second):\n%s", diff)
	}

	// Four registered puzzles, three samples each.
	require.Len(t, s1, 4*3)
	assert.Equal(t, "cryptic-shift", s1[0].Puzzle)
	assert.True(t, strings.HasSuffix(s1[0].Answer.String(), "-0"))
}

func TestRunSamplesSkipsUnknown(t *testing.T) {
	c := newTestCollector(t)

	samples := []Sample{
		{Puzzle: "logfs", Answer: puzzle.StringAnswer("/expedition/logs/day02.txt")},
		{Puzzle: "not-a-puzzle", Answer: puzzle.IntAnswer(1)},
		{Puzzle: "echo-checksum", Answer: puzzle.IntAnswer(2)},
	}

	recs, err := c.RunSamples(context.Background(), samples)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Len(t, c.Attempts(), 2)
}

func TestSummarize(t *testing.T) {
	c := newTestCollector(t)
	ctx := context.Background()

	_, err := c.Record(ctx, "echo-checksum", puzzle.IntAnswer(2))
	require.NoError(t, err)
	_, err = c.Record(ctx, "echo-checksum", puzzle.IntAnswer(3))
	require.NoError(t, err)
	_, err = c.Record(ctx, "logfs", puzzle.StringAnswer("/nope"))
	require.NoError(t, err)

	s := c.Summarize()
	assert.Equal(t, 3, s.Overall.TotalAttempts)
	assert.Equal(t, 2, s.Overall.UniquePuzzles)
	require.NotEmpty(t, s.Overall.TopPuzzles)
	assert.Equal(t, "echo-checksum", s.Overall.TopPuzzles[0].Name)

	cs := s.Puzzles["echo-checksum"]
	assert.Equal(t, 2, cs.Attempts)
	assert.Equal(t, 1, cs.Successes)
	assert.LessOrEqual(t, len(cs.CommonMessages), 3)
}

func TestTextReport(t *testing.T) {
	c := newTestCollector(t)
	ctx := context.Background()
	c.Record(ctx, "logfs", puzzle.StringAnswer("/expedition/logs/day02.txt"))
	c.Record(ctx, "logfs", puzzle.StringAnswer("/nope"))

	report := TextReport(c.Summarize())
	assert.Contains(t, report, "Final-Trace Analytics Report")
	assert.Contains(t, report, "Total attempts: 2")
	assert.Contains(t, report, "logfs")
	assert.Contains(t, report, "#")
}

func TestJSONReport(t *testing.T) {
	c := newTestCollector(t)
	c.Record(context.Background(), "logfs", puzzle.StringAnswer("/nope"))

	pretty, err := c.JSONReport(true)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n")
	assert.Contains(t, pretty, `"total_attempts": 1`)

	compact, err := c.JSONReport(false)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}

func TestInspectTrimsExamples(t *testing.T) {
	c := newTestCollector(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		// Same message every time: one fingerprint bucket, capped examples.
		_, err := c.Record(ctx, "logfs", puzzle.StringAnswer("/nope"))
		require.NoError(t, err)
	}

	stats := c.Inspect()
	require.Len(t, stats, 1)
	for _, st := range stats {
		assert.Equal(t, 5, st.Count)
		assert.Len(t, st.Examples, 3)
		assert.Greater(t, st.MaxEntropy, 0.0)
	}
}

func TestAsciiBar(t *testing.T) {
	assert.Equal(t, "", asciiBar(5, 0, 40))
	assert.Equal(t, strings.Repeat("#", 40), asciiBar(10, 10, 40))
	assert.Equal(t, strings.Repeat("#", 20)+strings.Repeat("-", 20), asciiBar(5, 10, 40))
}

func TestDurationHelpers(t *testing.T) {
	assert.Equal(t, time.Duration(0), meanDuration(nil))
	assert.Equal(t, time.Duration(0), medianDuration(nil))

	ds := []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}
	assert.Equal(t, 2*time.Millisecond, meanDuration(ds))
	assert.Equal(t, 2*time.Millisecond, medianDuration(ds))

	even := []time.Duration{time.Millisecond, 3 * time.Millisecond}
	assert.Equal(t, 2*time.Millisecond, medianDuration(even))
}
