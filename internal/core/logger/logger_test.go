package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"issue-tracker/internal/core/config"
)

func TestJSONOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l, done := New(Options{Level: "warn", JSON: true, Out: &buf})
	l.Info("dropped")
	l.Warn("kept", zap.Uint("id", 7))
	done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.EqualValues(t, 7, entry["id"])
	assert.Contains(t, entry, "ts")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, done := New(Options{Level: "loud", JSON: true, Out: &buf})
	l.Debug("hidden")
	l.Info("shown")
	done()
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l, done := New(Options{
		Level: "info", JSON: false, Out: &buf,
		Rotate: FileRotate{Enable: true, Filename: file, MaxSizeMB: 1},
	})
	l.Info("to file")
	done()
	require.FileExists(t, file)

	// 控制台是彩色格式，文件固定 JSON
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	assert.Equal(t, "to file", entry["msg"])
	assert.Contains(t, buf.String(), "to file")
}

func TestFromConfigAddsServiceFields(t *testing.T) {
	opt := FromConfig(config.Log{Level: "info", JSON: true}, "api", "test")
	var buf bytes.Buffer
	opt.Out = &buf
	l, done := New(opt)
	l.Info("hello")
	done()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "api", entry["service"])
	assert.Equal(t, "test", entry["env"])
}

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)
	_, err := fmt.Fprintln(w, "slow sql 250ms")
	require.NoError(t, err)
	_, err = fmt.Fprintln(w, "")
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "slow sql 250ms", e.Message)
	assert.Equal(t, zapcore.WarnLevel, e.Level)
}
