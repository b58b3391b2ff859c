package quick

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swforge/logsys"
)

func TestParseSpec(t *testing.T) {
	spec, err := parseSpec(
		"log_file_path=tmp/test.log",
		"engine_logger_name=CORE",
		"max_size_mb=25",
		"compress=true",
	)
	require.NoError(t, err)

	assert.Equal(t, "tmp/test.log", spec.LogFilePath)
	assert.Equal(t, "CORE", spec.EngineLoggerName)
	assert.Equal(t, 25, spec.Rotation.MaxSizeMB)
	assert.True(t, spec.Rotation.Compress)
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{name: "MissingEquals", arg: "log_file_path"},
		{name: "UnknownKey", arg: "no_such_key=1"},
		{name: "BadInt", arg: "max_size_mb=ten"},
		{name: "BadBool", arg: "compress=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSpec(tt.arg)
			assert.Error(t, err)
		})
	}
}

func TestConfigRequiresArguments(t *testing.T) {
	assert.Error(t, Config())
}

func TestDerivedSystemCached(t *testing.T) {
	base := filepath.Join(t.TempDir(), "cached.log")
	require.NoError(t, Config("log_file_path="+base))
	defer Shutdown()

	first := sys()
	require.NotNil(t, first)
	assert.Same(t, first, sys())

	// Reinitialization swaps the default instance and invalidates the
	// cached handle.
	require.NoError(t, Config("log_file_path="+base))
	assert.NotSame(t, first, sys())
}

func TestQuickLogging(t *testing.T) {
	base := filepath.Join(t.TempDir(), "quick.log")
	require.NoError(t, Config("log_file_path="+base))
	defer Shutdown()

	Info("runtime message {}", 1)
	SystemInfo("engine message {}", 2)

	ext := filepath.Ext(base)
	dated := strings.TrimSuffix(base, ext) + "_" + time.Now().Format("2006-01-02") + ext
	data, err := os.ReadFile(dated)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "runtime message 1")
	assert.Contains(t, out, "engine message 2")
	assert.Contains(t, out, "[RUNTIME]")
	assert.Contains(t, out, "[ENGINE]")

	// Records report the code that called quick, not quick itself.
	assert.Contains(t, out, "quick_test.go:")
	assert.NotContains(t, out, "quick.go:")

	require.NotNil(t, logsys.EngineLogger())
	require.NotNil(t, logsys.RuntimeLogger())
}
