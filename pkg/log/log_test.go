package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := New(buf)
	l.now = func() time.Time { return time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Log(LevelError, CatFile, "save failed", "path", "a.html", "bytes", 12)
	assert.Equal(t, "2025-12-06T10:45:00 [ERROR] [file] save failed path=a.html bytes=12\n", buf.String())
}

func TestLoggerOddFields(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Log(LevelInfo, CatUI, "focus", "component")
	assert.Equal(t, "2025-12-06T10:45:00 [INFO] [ui] focus component=\n", buf.String())
}

func TestLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	l.SetMinLevel(LevelWarn)

	l.Log(LevelInfo, CatUI, "dropped")
	l.Log(LevelWarn, CatUI, "kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	l.SetEnabled(false)
	l.Log(LevelError, CatUI, "disabled")
	assert.NotContains(t, buf.String(), "disabled")
}

func TestPackageFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(fixedLogger(&buf))
	defer SetDefault(nil)

	Debug(CatHighlight, "rescan", "line", 3)
	ErrorErr(CatClipboard, "read failed", errors.New("no display"))
	ErrorErr(CatClipboard, "nil error", nil)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] [highlight] rescan line=3")
	assert.Contains(t, out, "[ERROR] [clipboard] read failed error=no display")
	assert.Contains(t, out, "nil error error=<nil>")
}

func TestNoDefaultLogger(t *testing.T) {
	SetDefault(nil)
	assert.NotPanics(t, func() { Info(CatConfig, "nobody listens") })
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	closeLog, err := Init(path)
	require.NoError(t, err)
	Warn(CatWatcher, "changed", "path", "index.html")
	closeLog()
	Warn(CatWatcher, "after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), "[WARN] [watcher] changed path=index.html")

	_, err = Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{"debug": LevelDebug, "Info": LevelInfo, "warning": LevelWarn, " ERROR ": LevelError} {
		got, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
