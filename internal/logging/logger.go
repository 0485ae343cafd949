// Package logging provides config-driven categorized file-based logging for
// the Final-Trace toolkit. Logs are written to the configured log directory
// with a separate file per category. When debug mode is off the whole
// package is a silent no-op, so library code can log unconditionally.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup and command dispatch
	CategoryEngine   Category = "engine"   // Attempt orchestration
	CategoryPuzzle   Category = "puzzle"   // Individual puzzle evaluation
	CategoryStore    Category = "store"    // Attempt persistence (sqlite/memory)
	CategoryServer   Category = "server"   // HTTP API
	CategoryAnalysis Category = "analysis" // Collector and reporting
)

// Options controls logger construction. It mirrors config.LoggingConfig to
// avoid a circular import between the two packages.
type Options struct {
	Dir        string          // Directory for per-category log files
	DebugMode  bool            // When false, Initialize is a no-op
	Level      string          // debug/info/warn/error
	JSONFormat bool            // Structured JSON instead of console lines
	Categories map[string]bool // nil means all categories enabled
}

// Logger wraps a zap sugared logger bound to one category. The zero value
// (and any logger for a disabled category) is a no-op.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	loggers = make(map[Category]*Logger)
	opts    Options
	level   zap.AtomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	ready   bool
	nop                     = &Logger{}
)

// Initialize sets up the logging directory and category filters. Safe to
// call more than once; later calls replace the active configuration.
func Initialize(o Options) error {
	mu.Lock()
	defer mu.Unlock()

	flushLocked()
	opts = o
	level.SetLevel(parseLevel(o.Level))
	ready = false

	if !o.DebugMode {
		return nil
	}
	if o.Dir == "" {
		return fmt.Errorf("logging: directory required in debug mode")
	}
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("logging: failed to create logs directory: %w", err)
	}
	ready = true

	boot := getLocked(CategoryBoot)
	boot.Info("=== Final-Trace logging initialized ===")
	boot.Info("Logs directory: %s", o.Dir)
	boot.Info("Level: %s json=%v", o.Level, o.JSONFormat)
	return nil
}

// SetLevel adjusts the active log level at runtime. Used by the config
// hot-reload watcher.
func SetLevel(l string) {
	level.SetLevel(parseLevel(l))
}

// Shutdown flushes and closes all category log files.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	flushLocked()
	ready = false
}

func flushLocked() {
	for _, l := range loggers {
		if l.sugar != nil {
			_ = l.sugar.Sync()
		}
	}
	loggers = make(map[Category]*Logger)
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled reports whether a category would produce output.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !ready {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category. Returns a no-op
// logger when logging is disabled or the category is filtered out.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	return getLocked(category)
}

func getLocked(category Category) *Logger {
	if l, ok := loggers[category]; ok {
		return l
	}
	if !categoryEnabledLocked(category) {
		return nop
	}

	// Date-prefixed files keep rotation a matter of deleting old days.
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open log file %s: %v\n", path, err)
		return nop
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if opts.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), level)
	l := &Logger{
		category: category,
		sugar:    zap.New(core).Sugar().Named(string(category)),
	}
	loggers[category] = l
	return l
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// Engine logs to the engine category
func Engine(format string, args ...interface{}) {
	Get(CategoryEngine).Info(format, args...)
}

// EngineDebug logs debug to the engine category
func EngineDebug(format string, args ...interface{}) {
	Get(CategoryEngine).Debug(format, args...)
}

// Store logs to the store category
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Info(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debug(format, args...)
}

// Server logs to the server category
func Server(format string, args ...interface{}) {
	Get(CategoryServer).Info(format, args...)
}

// ServerDebug logs debug to the server category
func ServerDebug(format string, args ...interface{}) {
	Get(CategoryServer).Debug(format, args...)
}

// Analysis logs to the analysis category
func Analysis(format string, args ...interface{}) {
	Get(CategoryAnalysis).Info(format, args...)
}

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
