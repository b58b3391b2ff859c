package logsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatedPath(t *testing.T) {
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

	assert.Equal(t, "logs/app_2025-06-01.log", datedPath("logs/app.log", day))
	assert.Equal(t, "app_2025-06-01", datedPath("app", day))
}

func TestDailyWriterWritesThrough(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "app.log")

	w, err := newDailyWriter(base, DefaultRotationConfig(), time.Now)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first record\n"))
	require.NoError(t, err)

	// Flush-on-every-record: the bytes must be on disk before any close.
	data, err := os.ReadFile(datedPath(base, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "first record\n", string(data))
}

func TestDailyWriterCutsAtMidnight(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "app.log")

	now := time.Date(2025, 6, 1, 23, 59, 59, 0, time.Local)
	clock := func() time.Time { return now }

	w, err := newDailyWriter(base, DefaultRotationConfig(), clock)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("before midnight\n"))
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = w.Write([]byte("after midnight\n"))
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "app_2025-06-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "before midnight\n", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "app_2025-06-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "after midnight\n", string(second))
}

func TestConsoleSinkSyncsCleanly(t *testing.T) {
	sink, err := NewConsoleSink(DefaultSpec().ConsoleSinkPattern)
	require.NoError(t, err)

	// Stdout is a terminal or pipe under normal runs; syncing it must not
	// surface the fsync failure through Close.
	assert.NoError(t, sink.Sync())
}

func TestNewDailyFileSinkBadPattern(t *testing.T) {
	_, err := NewDailyFileSink(filepath.Join(t.TempDir(), "app.log"), "%q", DefaultRotationConfig())
	assert.ErrorContains(t, err, "unknown pattern verb")
}

func TestNewDailyFileSinkCreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "deeper", "app.log")

	sink, err := NewDailyFileSink(base, DefaultSpec().FileSinkPattern, DefaultRotationConfig())
	require.NoError(t, err)
	defer closeSink(sink)

	info, err := os.Stat(filepath.Dir(base))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
