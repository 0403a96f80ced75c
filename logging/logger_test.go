package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Logger = (*TabLogger)(nil)
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = NoOpLogger{}
)

func newBufferLogger(level LogLevel) (*TabLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(&LoggerConfig{Level: level, Format: "json", Output: buf}), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestTabLogger_ScopedAttrs(t *testing.T) {
	l, buf := newBufferLogger(LogLevelDebug)
	l.WithComponent("router").WithTab("42").Info("hello", "tag", "LOADED")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, "router", lines[0]["component"])
	assert.Equal(t, "42", lines[0]["tab_id"])
	assert.Equal(t, "LOADED", lines[0]["tag"])
}

func TestTabLogger_WithDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferLogger(LogLevelDebug)
	_ = l.WithComponent("child")
	l.Info("plain")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	_, ok := lines[0]["component"]
	assert.False(t, ok)
}

func TestTabLogger_LevelFilter(t *testing.T) {
	l, buf := newBufferLogger(LogLevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	LogInbound(l, "CUSTOM", "https://a.test", true, nil)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "w", lines[0]["msg"])
	assert.Equal(t, "e", lines[1]["msg"])
}

func TestTabLogger_LogInboundError(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	LogInbound(l, "LOADED", "https://a.test", true, errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "boom", lines[0]["error"])
}

func TestTabLogger_LogOutbound(t *testing.T) {
	l, buf := newBufferLogger(LogLevelDebug)
	LogOutbound(l, "7", 2, nil)
	LogOutbound(l, "7", 1, errors.New("gone"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.EqualValues(t, 2, lines[0]["targets"])
	assert.Equal(t, "WARN", lines[1]["level"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"debug": LogLevelDebug, "INFO": LogLevelInfo, "": LogLevelInfo, "warning": LogLevelWarn, "error": LogLevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestTextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "text", Output: buf, Component: "watch"})
	l.Info("poll")
	assert.Contains(t, buf.String(), "component=watch")
	assert.Contains(t, buf.String(), "msg=poll")
}

func TestSlogAdapter_ForTab(t *testing.T) {
	buf := &bytes.Buffer{}
	host := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})).With("app", "dashboard")
	a := NewSlogAdapter(host)

	a.ForTab("42").Info("handshake sent", "tag", "LOADED")
	a.Debug("filtered by the host handler")
	LogOutbound(a, "7", 0, errors.New("closed"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "dashboard", lines[0]["app"])
	assert.Equal(t, "42", lines[0]["tab_id"])
	assert.Equal(t, "LOADED", lines[0]["tag"])
	assert.Equal(t, "WARN", lines[1]["level"])
	_, ok := lines[1]["tab_id"]
	assert.False(t, ok, "ForTab must not scope the original adapter")
}

func TestNewSlogAdapter_NilUsesDefault(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}
