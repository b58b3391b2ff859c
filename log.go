package logsys

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Package-level state for the default System. Thread-safety follows the
// usual pattern: a mutex for lifecycle transitions, atomics on the hot
// read path.
var (
	initMu        sync.Mutex
	isInitialized atomic.Bool

	defaultSys atomic.Pointer[System] // the owned instance
	wrappedSys atomic.Pointer[System] // caller-skip derived, used by package functions
)

// Init initializes the default logging System with the provided
// specification. Zero-valued Spec fields fall back to DefaultSpec. A
// second Init closes the previous instance and reinitializes.
func Init(spec Spec, opts ...Option) error {
	initMu.Lock()
	defer initMu.Unlock()

	if old := defaultSys.Load(); old != nil {
		if err := old.Close(); err != nil {
			return err
		}
		defaultSys.Store(nil)
		wrappedSys.Store(nil)
		isInitialized.Store(false)
	}

	sys, err := New(spec, opts...)
	if err != nil {
		return err
	}
	defaultSys.Store(sys)
	wrappedSys.Store(sys.WithCallerSkip(1))
	isInitialized.Store(true)
	return nil
}

// Shutdown flushes and closes the default System. Log calls after
// Shutdown are dropped.
func Shutdown() error {
	initMu.Lock()
	defer initMu.Unlock()

	sys := defaultSys.Load()
	if sys == nil {
		return nil
	}
	err := sys.Close()
	defaultSys.Store(nil)
	wrappedSys.Store(nil)
	isInitialized.Store(false)
	return err
}

// IsInitialized reports whether the default System is live.
func IsInitialized() bool {
	return isInitialized.Load()
}

// EnsureInitialized initializes the default System with DefaultSpec if no
// instance is live. It returns true if a live instance exists afterwards.
func EnsureInitialized() bool {
	if isInitialized.Load() {
		return true
	}
	return Init(Spec{}) == nil
}

// Default returns the default System, or nil before Init / after Shutdown.
func Default() *System {
	return defaultSys.Load()
}

// EngineLogger returns the default engine logger handle, nil when
// uninitialized.
func EngineLogger() *zap.Logger {
	if sys := defaultSys.Load(); sys != nil {
		return sys.Engine()
	}
	return nil
}

// RuntimeLogger returns the default runtime logger handle, nil when
// uninitialized.
func RuntimeLogger() *zap.Logger {
	if sys := defaultSys.Load(); sys != nil {
		return sys.Runtime()
	}
	return nil
}

// AddEngineSink appends a sink to the default engine channel.
func AddEngineSink(sink Sink) {
	initMu.Lock()
	defer initMu.Unlock()
	if sys := defaultSys.Load(); sys != nil {
		sys.AddEngineSink(sink)
		wrappedSys.Store(sys.WithCallerSkip(1))
	}
}

// AddRuntimeSink appends a sink to the default runtime channel.
func AddRuntimeSink(sink Sink) {
	initMu.Lock()
	defer initMu.Unlock()
	if sys := defaultSys.Load(); sys != nil {
		sys.AddRuntimeSink(sink)
		wrappedSys.Store(sys.WithCallerSkip(1))
	}
}

// SetTrapHook replaces the default System's trap hook.
func SetTrapHook(fn func()) {
	if sys := defaultSys.Load(); sys != nil {
		sys.SetTrapHook(fn)
	}
	if sys := wrappedSys.Load(); sys != nil {
		sys.SetTrapHook(fn)
	}
}

// Log is the generic tagged entry point on the default System.
func Log(ch Channel, lvl Level, tag, format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.Log(ch, lvl, tag, format, args...)
	}
}

// EngineTrace logs a trace record on the default engine channel.
func EngineTrace(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineTrace(format, args...)
	}
}

// EngineDebug logs a debug record on the default engine channel.
func EngineDebug(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineDebug(format, args...)
	}
}

// EngineInfo logs an info record on the default engine channel.
func EngineInfo(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineInfo(format, args...)
	}
}

// EngineWarn logs a warning record on the default engine channel.
func EngineWarn(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineWarn(format, args...)
	}
}

// EngineError logs an error record on the default engine channel.
func EngineError(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineError(format, args...)
	}
}

// EngineFatal logs a critical record on the default engine channel and
// fires the trap hook.
func EngineFatal(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.EngineFatal(format, args...)
	}
}

// RuntimeTrace logs a trace record on the default runtime channel.
func RuntimeTrace(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeTrace(format, args...)
	}
}

// RuntimeDebug logs a debug record on the default runtime channel.
func RuntimeDebug(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeDebug(format, args...)
	}
}

// RuntimeInfo logs an info record on the default runtime channel.
func RuntimeInfo(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeInfo(format, args...)
	}
}

// RuntimeWarn logs a warning record on the default runtime channel.
func RuntimeWarn(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeWarn(format, args...)
	}
}

// RuntimeError logs an error record on the default runtime channel.
func RuntimeError(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeError(format, args...)
	}
}

// RuntimeFatal logs a critical record on the default runtime channel and
// fires the trap hook.
func RuntimeFatal(format string, args ...any) {
	if sys := wrappedSys.Load(); sys != nil {
		sys.RuntimeFatal(format, args...)
	}
}

// Assert checks cond on the default System; see System.Assert.
func Assert(cond bool, format string, args ...any) {
	if !assertsEnabled || cond {
		return
	}
	if sys := wrappedSys.Load(); sys != nil {
		sys.Assert(cond, format, args...)
	}
}

// Verify checks cond on the default System; see System.Verify.
func Verify(cond bool, format string, args ...any) {
	if cond {
		return
	}
	if sys := wrappedSys.Load(); sys != nil {
		sys.Verify(cond, format, args...)
	}
}
