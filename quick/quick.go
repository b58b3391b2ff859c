// Package quick provides a zero-configuration veneer over logsys. The
// first log call initializes the default System with DefaultSpec; Config
// accepts "key=value" overrides matching the Spec field tags.
package quick

import (
	"fmt"
	"sync/atomic"

	"github.com/swforge/logsys"
)

// derived pairs a caller-skip adjusted System with the default instance
// it was built from, so the cache invalidates when Init swaps the default.
type derived struct {
	base *logsys.System
	skip *logsys.System
}

var cache atomic.Pointer[derived]

// sys returns a handle to the default System that reports this package's
// callers, initializing it on first use. The adjusted handle is cached
// per default instance to keep log calls allocation-free.
func sys() *logsys.System {
	if !logsys.EnsureInitialized() {
		return nil
	}
	d := logsys.Default()
	if d == nil {
		return nil
	}
	if c := cache.Load(); c != nil && c.base == d {
		return c.skip
	}
	s := d.WithCallerSkip(1)
	cache.Store(&derived{base: d, skip: s})
	return s
}

// Trace logs a trace message on the runtime channel.
func Trace(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeTrace(format, args...)
	}
}

// Debug logs a debug message on the runtime channel.
func Debug(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeDebug(format, args...)
	}
}

// Info logs an info message on the runtime channel.
func Info(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeInfo(format, args...)
	}
}

// Warn logs a warning message on the runtime channel.
func Warn(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeWarn(format, args...)
	}
}

// Error logs an error message on the runtime channel.
func Error(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeError(format, args...)
	}
}

// Fatal logs a critical message on the runtime channel and fires the
// trap hook.
func Fatal(format string, args ...any) {
	if s := sys(); s != nil {
		s.RuntimeFatal(format, args...)
	}
}

// SystemTrace logs a trace message on the engine channel.
func SystemTrace(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineTrace(format, args...)
	}
}

// SystemDebug logs a debug message on the engine channel.
func SystemDebug(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineDebug(format, args...)
	}
}

// SystemInfo logs an info message on the engine channel.
func SystemInfo(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineInfo(format, args...)
	}
}

// SystemWarn logs a warning message on the engine channel.
func SystemWarn(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineWarn(format, args...)
	}
}

// SystemError logs an error message on the engine channel.
func SystemError(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineError(format, args...)
	}
}

// SystemFatal logs a critical message on the engine channel and fires
// the trap hook.
func SystemFatal(format string, args ...any) {
	if s := sys(); s != nil {
		s.EngineFatal(format, args...)
	}
}

// Config reinitializes the default System from "key=value" statements,
// e.g. quick.Config("log_file_path=logs/game.log", "max_size_mb=50").
func Config(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("no config provided")
	}

	spec, err := parseSpec(args...)
	if err != nil {
		return err
	}
	return logsys.Init(spec)
}

// Shutdown performs a graceful shutdown of the default System.
func Shutdown() {
	_ = logsys.Shutdown()
}
