package logsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink is an output target for log records with its own rendering pattern.
// Any zapcore.Core can be attached to a channel; the constructors below
// build the two sinks the facade configures by default. Sinks that hold
// files additionally implement io.Closer.
type Sink = zapcore.Core

// NewConsoleSink creates a colorized sink writing to standard output.
// Color spans (%^ ... %$) are honored; coloring is suppressed automatically
// when stdout is not a terminal.
func NewConsoleSink(pattern string) (Sink, error) {
	enc, err := newPatternEncoder(pattern, true)
	if err != nil {
		return nil, fmt.Errorf("console sink: %w", err)
	}
	ws := consoleSyncer{zapcore.Lock(os.Stdout)}
	return zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(LevelTrace.zapLevel())), nil
}

// consoleSyncer drops Sync errors. fsync is not supported on terminals
// and pipes, so syncing stdout fails with EINVAL on a routine shutdown.
type consoleSyncer struct {
	zapcore.WriteSyncer
}

func (consoleSyncer) Sync() error { return nil }

// NewDailyFileSink creates a plain-text sink writing one file per calendar
// day. The date is inserted before the path's extension (logs/app.log
// becomes logs/app_2006-01-02.log) and the file is cut at local midnight.
// Within a day, rotation limits from rot apply via lumberjack.
func NewDailyFileSink(path, pattern string, rot RotationConfig) (Sink, error) {
	enc, err := newPatternEncoder(pattern, false)
	if err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	w, err := newDailyWriter(path, rot, time.Now)
	if err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	return &fileCore{
		Core:   zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(LevelTrace.zapLevel())),
		writer: w,
	}, nil
}

// fileCore couples a core with the writer it must close.
type fileCore struct {
	zapcore.Core
	writer *dailyWriter
}

func (c *fileCore) Close() error {
	return c.writer.Close()
}

// closeSink closes a sink if it holds closable resources.
func closeSink(s Sink) error {
	if closer, ok := s.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// dailyWriter is a zapcore.WriteSyncer that swaps its underlying
// lumberjack logger when the local calendar day changes.
type dailyWriter struct {
	mu   sync.Mutex
	base string
	rot  RotationConfig
	now  func() time.Time

	day    int
	lj     *lumberjack.Logger
	closed bool
}

func newDailyWriter(path string, rot RotationConfig, now func() time.Time) (*dailyWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &dailyWriter{base: path, rot: rot, now: now}, nil
}

// dateKey identifies a local calendar day.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// datedPath inserts the day stamp before the path extension.
func datedPath(base string, t time.Time) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%s%s", stem, t.Format("2006-01-02"), ext)
}

func (w *dailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fmt.Errorf("log file is closed")
	}

	t := w.now()
	if key := dateKey(t); w.lj == nil || key != w.day {
		if w.lj != nil {
			if err := w.lj.Close(); err != nil {
				return 0, fmt.Errorf("failed to close old log file: %w", err)
			}
		}
		w.lj = &lumberjack.Logger{
			Filename:   datedPath(w.base, t),
			MaxSize:    w.rot.MaxSizeMB,
			MaxBackups: w.rot.MaxBackups,
			MaxAge:     w.rot.MaxAgeDays,
			Compress:   w.rot.Compress,
			LocalTime:  true,
		}
		w.day = key
	}
	return w.lj.Write(p)
}

// Sync satisfies zapcore.WriteSyncer. Lumberjack writes through to the
// file on every Write, so there is nothing buffered to flush.
func (w *dailyWriter) Sync() error {
	return nil
}

func (w *dailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.lj == nil {
		return nil
	}
	err := w.lj.Close()
	w.lj = nil
	return err
}
