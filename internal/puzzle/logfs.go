package puzzle

import (
	"context"
	"strings"
)

func init() {
	defaultRegistry.MustRegister(&LogFSPuzzle{})
}

// LogFSPuzzle hides an expedition note inside a tiny virtual filesystem;
// players must provide the path to the note.
type LogFSPuzzle struct{}

// The virtual tree: directories list their entries, files hold text.
var (
	logfsDirs = map[string][]string{
		"/":                {"expedition", "README.txt"},
		"/expedition":      {"logs", "meta.yml"},
		"/expedition/logs": {"day01.txt", "day02.txt"},
	}
	logfsFiles = map[string]string{
		"/expedition/logs/day01.txt": "We reached the crater.",
		"/expedition/logs/day02.txt": "Found traces of station 33.",
	}
)

func (p *LogFSPuzzle) Name() string { return "logfs" }

func (p *LogFSPuzzle) Describe() Description {
	return Description{
		Name:    p.Name(),
		Summary: "Provide the path to the expedition note in the tiny virtual filesystem.",
	}
}

func (p *LogFSPuzzle) Solve(ctx context.Context, answer Answer) (Result, error) {
	s, ok := answer.Str()
	if !ok {
		return Result{Solved: false, Message: "path must be a string"}, nil
	}

	path := strings.TrimSpace(s)
	text, isFile := logfsFiles[path]
	if !isFile {
		return Result{Solved: false, Message: "no such file or not a file"}, nil
	}

	if strings.Contains(strings.ToLower(text), "station 33") || strings.Contains(text, "33") {
		return Result{Solved: true, Message: "Found note: " + text}, nil
	}
	return Result{Solved: false, Message: "Found text but not expected: " + text}, nil
}

// Entries lists a directory in the virtual tree. Exposed for tooling that
// wants to render the tree without hardcoding it twice.
func (p *LogFSPuzzle) Entries(dir string) ([]string, bool) {
	entries, ok := logfsDirs[dir]
	return entries, ok
}
