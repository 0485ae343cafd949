package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggingIsNoop(t *testing.T) {
	if err := Initialize(Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Shutdown()

	// Must not panic or create files.
	Get(CategoryEngine).Info("ignored %d", 1)
	Engine("also ignored")

	if IsCategoryEnabled(CategoryEngine) {
		t.Error("expected engine category disabled in production mode")
	}
}

func TestCategoryFileCreated(t *testing.T) {
	dir := t.TempDir()
	err := Initialize(Options{Dir: dir, DebugMode: true, Level: "debug"})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Shutdown()

	Store("attempt recorded puzzle=%s", "logfs")
	StoreDebug("detail %d", 42)
	Shutdown()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var storeLog string
	for _, e := range entries {
		if strings.Contains(e.Name(), "_store.log") {
			storeLog = filepath.Join(dir, e.Name())
		}
	}
	if storeLog == "" {
		t.Fatalf("no store log file created in %s", dir)
	}

	data, err := os.ReadFile(storeLog)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "attempt recorded puzzle=logfs") {
		t.Errorf("log file missing info line: %q", string(data))
	}
	if !strings.Contains(string(data), "detail 42") {
		t.Errorf("log file missing debug line at debug level: %q", string(data))
	}
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	err := Initialize(Options{
		Dir:        dir,
		DebugMode:  true,
		Level:      "info",
		Categories: map[string]bool{"server": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Shutdown()

	if IsCategoryEnabled(CategoryServer) {
		t.Error("server category should be filtered out")
	}
	if !IsCategoryEnabled(CategoryEngine) {
		t.Error("engine category should default to enabled")
	}
}
