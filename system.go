package logsys

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// System is an explicitly owned logging context holding the engine and
// runtime channel loggers. The package-level functions in log.go operate
// on a process-wide default System; libraries that prefer injected
// dependencies can carry their own.
//
// Both channels share the same console and daily-file sinks, run at the
// most verbose level, and write through on every record.
type System struct {
	mu   sync.RWMutex
	spec Spec

	engine  *zap.Logger
	runtime *zap.Logger

	engineSinks  []Sink
	runtimeSinks []Sink

	trap  func()
	clock zapcore.Clock
	skip  int
}

// Option adjusts a System at construction time.
type Option func(*System)

// WithTrapHook replaces the debugger trap fired after fatal records and
// failed assertions. The default is runtime.Breakpoint.
func WithTrapHook(fn func()) Option {
	return func(s *System) {
		if fn != nil {
			s.trap = fn
		}
	}
}

// WithClock replaces the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *System) {
		if now != nil {
			s.clock = clockFunc(now)
		}
	}
}

// clockFunc adapts a plain time source to zapcore.Clock.
type clockFunc func() time.Time

func (f clockFunc) Now() time.Time                         { return f() }
func (f clockFunc) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }

// New builds a logging System from spec. Both channel loggers are created
// over a shared console sink and daily file sink, each rendering with its
// own pattern from the Spec.
func New(spec Spec, opts ...Option) (*System, error) {
	spec = mergeSpec(spec)
	if err := validateSpec(spec); err != nil {
		return nil, fmt.Errorf("invalid logger specification: %w", err)
	}

	s := &System{
		spec: spec,
		trap: runtime.Breakpoint,
	}
	for _, opt := range opts {
		opt(s)
	}

	console, err := NewConsoleSink(spec.ConsoleSinkPattern)
	if err != nil {
		return nil, err
	}
	file, err := NewDailyFileSink(spec.LogFilePath, spec.FileSinkPattern, spec.Rotation)
	if err != nil {
		return nil, err
	}

	// The same sink instances back both channels.
	s.engineSinks = []Sink{console, file}
	s.runtimeSinks = []Sink{console, file}
	s.engine = s.newChannelLogger(spec.EngineLoggerName, s.engineSinks)
	s.runtime = s.newChannelLogger(spec.RuntimeLoggerName, s.runtimeSinks)
	return s, nil
}

// newChannelLogger assembles a named zap logger over the given sinks.
func (s *System) newChannelLogger(name string, sinks []Sink) *zap.Logger {
	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(2 + s.skip),
	}
	if s.clock != nil {
		opts = append(opts, zap.WithClock(s.clock))
	}
	return zap.New(zapcore.NewTee(sinks...), opts...).Named(name)
}

// WithCallerSkip returns a System that reports callers n frames higher in
// the stack. Intended for wrapper packages; sinks added to the parent
// afterwards are not reflected in the derived System.
func (s *System) WithCallerSkip(n int) *System {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := &System{
		spec:  s.spec,
		trap:  s.trap,
		clock: s.clock,
		skip:  s.skip + n,
	}
	if s.engine != nil {
		d.engine = s.engine.WithOptions(zap.AddCallerSkip(n))
	}
	if s.runtime != nil {
		d.runtime = s.runtime.WithOptions(zap.AddCallerSkip(n))
	}
	return d
}

// Engine returns the engine channel's zap logger, or nil after Close.
func (s *System) Engine() *zap.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Runtime returns the runtime channel's zap logger, or nil after Close.
func (s *System) Runtime() *zap.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runtime
}

// AddEngineSink appends a sink to the engine channel. There is no removal
// operation.
func (s *System) AddEngineSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return
	}
	s.engineSinks = append(s.engineSinks, sink)
	s.engine = s.newChannelLogger(s.spec.EngineLoggerName, s.engineSinks)
}

// AddRuntimeSink appends a sink to the runtime channel.
func (s *System) AddRuntimeSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runtime == nil {
		return
	}
	s.runtimeSinks = append(s.runtimeSinks, sink)
	s.runtime = s.newChannelLogger(s.spec.RuntimeLoggerName, s.runtimeSinks)
}

// Close flushes both channels, closes file sinks, and drops the handles.
// Log calls on a closed System are dropped.
func (s *System) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil && s.runtime == nil {
		return nil
	}

	var firstErr error
	if s.engine != nil {
		if err := s.engine.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.runtime != nil {
		if err := s.runtime.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// The console and file sinks are shared between the channels, so
	// close each instance once.
	closed := map[Sink]bool{}
	for _, sink := range append(s.engineSinks, s.runtimeSinks...) {
		if closed[sink] {
			continue
		}
		closed[sink] = true
		if err := closeSink(sink); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close sink: %w", err)
		}
	}

	s.engine = nil
	s.runtime = nil
	s.engineSinks = nil
	s.runtimeSinks = nil
	return firstErr
}

// handle returns the zap logger backing a channel, nil if closed.
func (s *System) handle(ch Channel) *zap.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ch == Engine {
		return s.engine
	}
	return s.runtime
}

// logf renders and emits one record. Fatal records fire the trap hook
// after emission. Callers must sit exactly one frame above logf for
// source locations to land on their own caller.
func (s *System) logf(ch Channel, lvl Level, format string, args []any) {
	lg := s.handle(ch)
	if lg == nil {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = Format(format, args...)
	}
	if ce := lg.Check(lvl.zapLevel(), msg); ce != nil {
		ce.Write()
	}
	if lvl == LevelFatal {
		s.mu.RLock()
		trap := s.trap
		s.mu.RUnlock()
		trap()
	}
}

// Log is the generic entry point: it interpolates eagerly, prefixes the
// tag, and dispatches to the level-matching call on the selected channel.
func (s *System) Log(ch Channel, lvl Level, tag, format string, args ...any) {
	if !channelEnabled(ch) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = Format(format, args...)
	}
	if tag != "" {
		msg = "[" + tag + "] " + msg
	}
	s.logf(ch, lvl, msg, nil)
}

// EngineTrace logs a trace record on the engine channel.
func (s *System) EngineTrace(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelTrace, format, args)
	}
}

// EngineDebug logs a debug record on the engine channel.
func (s *System) EngineDebug(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelDebug, format, args)
	}
}

// EngineInfo logs an info record on the engine channel.
func (s *System) EngineInfo(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelInfo, format, args)
	}
}

// EngineWarn logs a warning record on the engine channel.
func (s *System) EngineWarn(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelWarn, format, args)
	}
}

// EngineError logs an error record on the engine channel.
func (s *System) EngineError(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelError, format, args)
	}
}

// EngineFatal logs a critical record on the engine channel and fires the
// trap hook.
func (s *System) EngineFatal(format string, args ...any) {
	if engineLogsEnabled {
		s.logf(Engine, LevelFatal, format, args)
	}
}

// RuntimeTrace logs a trace record on the runtime channel.
func (s *System) RuntimeTrace(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelTrace, format, args)
	}
}

// RuntimeDebug logs a debug record on the runtime channel.
func (s *System) RuntimeDebug(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelDebug, format, args)
	}
}

// RuntimeInfo logs an info record on the runtime channel.
func (s *System) RuntimeInfo(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelInfo, format, args)
	}
}

// RuntimeWarn logs a warning record on the runtime channel.
func (s *System) RuntimeWarn(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelWarn, format, args)
	}
}

// RuntimeError logs an error record on the runtime channel.
func (s *System) RuntimeError(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelError, format, args)
	}
}

// RuntimeFatal logs a critical record on the runtime channel and fires
// the trap hook.
func (s *System) RuntimeFatal(format string, args ...any) {
	if runtimeLogsEnabled {
		s.logf(Runtime, LevelFatal, format, args)
	}
}

// Assert logs a critical engine record and fires the trap hook when cond
// is false. It compiles to a no-op under the logsys_noassert build tag.
// Unlike a C assert, the arguments are still evaluated.
func (s *System) Assert(cond bool, format string, args ...any) {
	if !assertsEnabled || cond {
		return
	}
	s.logf(Engine, LevelFatal, assertMessage(format, args), nil)
}

// Verify is Assert without the build switch: the check is always present.
func (s *System) Verify(cond bool, format string, args ...any) {
	if cond {
		return
	}
	s.logf(Engine, LevelFatal, assertMessage(format, args), nil)
}

// SetTrapHook replaces the trap hook after construction.
func (s *System) SetTrapHook(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		fn = runtime.Breakpoint
	}
	s.trap = fn
}

func assertMessage(format string, args []any) string {
	msg := format
	if len(args) > 0 {
		msg = Format(format, args...)
	}
	return "Assertion failed: " + msg
}

// channelEnabled reports whether a channel survived the build switches.
func channelEnabled(ch Channel) bool {
	if ch == Engine {
		return engineLogsEnabled
	}
	return runtimeLogsEnabled
}
