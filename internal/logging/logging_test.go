package logging

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

func TestLoggerWritesLogfmtWithInheritedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(&buf, Debug), "star").With(F("session", "abc"))

	logger.Warn("mutation failed", F("err", errors.New("boom: timeout")), F("took", 1500*time.Millisecond), F("starred", true))

	line := buf.String()
	assert.Contains(t, line, "level=warn")
	assert.Contains(t, line, `msg="mutation failed"`)
	assert.Contains(t, line, "component=star session=abc")
	assert.Contains(t, line, `err="boom: timeout"`)
	assert.Contains(t, line, "took=1.5s")
	assert.Contains(t, line, "starred=true")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, ParseLevel("warning"))

	logger.Info("hidden")
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(Info))
	assert.True(t, logger.Enabled(Error))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")
	logger, closer, err := OpenFile(path, Info)
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, closer.Close())

	logger, closer, err = OpenFile(path, Info)
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNewRequestIDIsUnique(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestLoggerRedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Debug).With(F("Authorization", "Bearer secret"))

	logger.Info("request", F("token", "abc"), F("op", "GetAdmin"))

	line := buf.String()
	assert.NotContains(t, line, "secret")
	assert.NotContains(t, line, "abc")
	assert.Contains(t, line, "Authorization=[redacted]")
	assert.Contains(t, line, "token=[redacted]")
	assert.Contains(t, line, "op=GetAdmin")
}

func TestLoggerQuotesControlCharacters(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Info).Info("fetched", F("identifier", "ada\x1b[31m"))

	assert.Contains(t, buf.String(), `identifier="ada\x1b[31m"`)
	assert.NotContains(t, buf.String(), "\x1b")
}

func TestLoggerUsesClock(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	New(&buf, Info, WithClock(func() time.Time { return at })).Info("tick")

	assert.Equal(t, "ts=2024-03-01T12:00:00Z level=info msg=tick\n", buf.String())
}

func TestNopIsSilent(t *testing.T) {
	logger := Nop()
	assert.False(t, logger.Enabled(Error))
	logger.With(F("a", 1)).Error("dropped")
}
