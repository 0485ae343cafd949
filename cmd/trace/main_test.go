package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaltrace/internal/engine"
	"finaltrace/internal/store"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing puzzle", errMissingPuzzle, exitMissingPuzzle},
		{"wrapped missing puzzle", errors.Join(errors.New("ctx"), errMissingPuzzle), exitMissingPuzzle},
		{"unknown puzzle", engine.ErrPuzzleNotFound, exitUnknownPuzzle},
		{"generic error", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestLoadConfigDBOverride(t *testing.T) {
	origCfg, origDB := cfgPath, dbPath
	t.Cleanup(func() { cfgPath, dbPath = origCfg, origDB })

	cfgPath = "does-not-exist.yaml" // missing file falls back to defaults
	dbPath = "/tmp/override.db"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/override.db", cfg.Store.Path)
}

func TestSolveCommandExitCodes(t *testing.T) {
	origCfg, origDB := cfgPath, dbPath
	t.Cleanup(func() {
		cfgPath, dbPath = origCfg, origDB
		rootCmd.SetArgs(nil)
	})
	cfgPath = "does-not-exist.yaml"
	dbPath = ""

	rootCmd.SetArgs([]string{"solve"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitMissingPuzzle, exitCodeFor(err))

	rootCmd.SetArgs([]string{"solve", "no-such-puzzle"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitUnknownPuzzle, exitCodeFor(err))
}

func TestBuildEngineHasRegisteredPuzzles(t *testing.T) {
	eng := buildEngine(store.NewMemoryStore())
	names := eng.List()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "cryptic-shift")
	assert.Contains(t, names, "xor-echo")
	assert.Contains(t, names, "echo-checksum")
	assert.Contains(t, names, "logfs")
}
