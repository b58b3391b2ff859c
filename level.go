package logsys

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log record. Levels are strictly
// ordered from LevelTrace (most verbose) to LevelFatal.
type Level int8

const (
	LevelTrace Level = iota - 2
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the lowercase name of the level as rendered by the %l
// pattern verb.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", int8(l))
	}
}

// shortString returns the single-letter level name used by the %L verb.
func (l Level) shortString() string {
	switch l {
	case LevelTrace:
		return "T"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	case LevelFatal:
		return "C"
	default:
		return "?"
	}
}

// zapLevel maps a facade level onto the zapcore level space. Trace sits
// one step below zapcore's debug so the backend gates it like any other
// level.
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelTrace:
		return zapcore.Level(-2)
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		// DPanic writes and returns outside development mode; halting is
		// owned by the facade's trap hook, not the backend.
		return zapcore.DPanicLevel
	default:
		return zapcore.InvalidLevel
	}
}

// levelFromZap recovers the facade level from a zapcore entry level.
func levelFromZap(zl zapcore.Level) Level {
	switch zl {
	case zapcore.Level(-2):
		return LevelTrace
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelFatal
	}
}

// ParseLevel converts a level name to its Level constant.
// Accepts both short names ("debug") and prefixed names ("leveldebug").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "leveltrace":
		return LevelTrace, nil
	case "debug", "leveldebug":
		return LevelDebug, nil
	case "info", "levelinfo":
		return LevelInfo, nil
	case "warn", "warning", "levelwarn":
		return LevelWarn, nil
	case "error", "levelerror":
		return LevelError, nil
	case "fatal", "critical", "levelfatal":
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("invalid level: %s", s)
	}
}

// Channel selects the logical logger a record belongs to.
type Channel int8

const (
	// Engine carries system-level messages.
	Engine Channel = iota
	// Runtime carries application-level messages.
	Runtime
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Engine:
		return "engine"
	case Runtime:
		return "runtime"
	default:
		return fmt.Sprintf("unknown(%d)", int8(c))
	}
}
