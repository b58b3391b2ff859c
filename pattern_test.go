package logsys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestCompilePatternErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{name: "DefaultConsole", pattern: "%^[%T] [%n] [%l] [%s:%#]: %v%$"},
		{name: "DefaultFile", pattern: "[%T] [%l] [%n] [%s:%#]: %v"},
		{name: "LiteralPercent", pattern: "100%% %v"},
		{name: "Empty", pattern: ""},
		{name: "UnknownVerb", pattern: "%q %v", wantErr: true},
		{name: "TrailingPercent", pattern: "%v %", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compilePattern(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func testEntry() zapcore.Entry {
	return zapcore.Entry{
		Level:      LevelInfo.zapLevel(),
		Time:       time.Date(2025, 6, 1, 13, 45, 30, 0, time.Local),
		LoggerName: "ENGINE",
		Message:    "hello",
		Caller: zapcore.EntryCaller{
			Defined:  true,
			File:     "/src/game/render.go",
			Line:     42,
			Function: "game.render",
		},
	}
}

func TestPatternEncoder(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{
			name:    "FullRecord",
			pattern: "[%T] [%n] [%l] [%s:%#]: %v",
			want:    "[13:45:30] [ENGINE] [info] [render.go:42]: hello",
		},
		{
			name:    "ShortLevel",
			pattern: "%L %v",
			want:    "I hello",
		},
		{
			name:    "Function",
			pattern: "%! %v",
			want:    "game.render hello",
		},
		{
			name:    "LiteralPercent",
			pattern: "%v 100%%",
			want:    "hello 100%",
		},
		{
			name:    "ColorSpanUncolored",
			pattern: "%^%l%$ %v",
			want:    "info hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := newPatternEncoder(tt.pattern, false)
			require.NoError(t, err)

			buf, err := enc.EncodeEntry(testEntry(), nil)
			require.NoError(t, err)
			defer buf.Free()

			assert.Equal(t, tt.want+zapcore.DefaultLineEnding, buf.String())
		})
	}
}

func TestPatternEncoderLevels(t *testing.T) {
	enc, err := newPatternEncoder("%l", false)
	require.NoError(t, err)

	levels := map[Level]string{
		LevelTrace: "trace",
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warning",
		LevelError: "error",
		LevelFatal: "critical",
	}

	for lvl, want := range levels {
		ent := testEntry()
		ent.Level = lvl.zapLevel()

		buf, err := enc.EncodeEntry(ent, nil)
		require.NoError(t, err)
		assert.Equal(t, want+zapcore.DefaultLineEnding, buf.String())
		buf.Free()
	}
}

func TestPatternEncoderClone(t *testing.T) {
	enc, err := newPatternEncoder("%v", false)
	require.NoError(t, err)

	clone := enc.Clone()
	buf, err := clone.EncodeEntry(testEntry(), nil)
	require.NoError(t, err)
	defer buf.Free()

	assert.Equal(t, "hello"+zapcore.DefaultLineEnding, buf.String())
}

func TestPatternEncoderUndefinedCaller(t *testing.T) {
	enc, err := newPatternEncoder("[%s:%#] %v", false)
	require.NoError(t, err)

	ent := testEntry()
	ent.Caller = zapcore.EntryCaller{}

	buf, err := enc.EncodeEntry(ent, nil)
	require.NoError(t, err)
	defer buf.Free()

	assert.Equal(t, "[:] hello"+zapcore.DefaultLineEnding, buf.String())
}
