package app

import (
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func newToastModel(now *time.Time) *Model {
	m := NewModel(Dependencies{}, WithClock(func() time.Time { return *now }))
	return &m
}

func TestShowToastSetsExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newToastModel(&now)

	m.showToast(toastLevelWarning, "  careful  ", 0)

	assert.Equal(t, "careful", m.toastText)
	assert.Equal(t, toastLevelWarning, m.toastLevel)
	assert.Equal(t, now.Add(defaultToastDuration), m.toastUntil)
	assert.True(t, m.toastActive(now))
	assert.Equal(t, 1, m.toastsShown)
}

func TestShowToastIgnoresBlankMessages(t *testing.T) {
	now := time.Now()
	m := newToastModel(&now)

	m.showInfoToast("   ")
	assert.Empty(t, m.toastText)
	assert.Zero(t, m.toastsShown)
}

func TestTickClearsExpiredToast(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newToastModel(&now)
	m.showErrorToast("copy failed")

	m.Update(tickMsg(now.Add(time.Second)))
	assert.Equal(t, "copy failed", m.toastText)

	m.Update(tickMsg(now.Add(defaultToastDuration + time.Millisecond)))
	assert.Empty(t, m.toastText)
	assert.Equal(t, toastLevelInfo, m.toastLevel)
}

func TestToastLineRightAligned(t *testing.T) {
	now := time.Now()
	m := newToastModel(&now)
	m.showInfoToast("saved")

	line := xansi.Strip(m.toastLine(20))
	assert.Equal(t, 20, xansi.StringWidth(line))
	assert.Equal(t, "              saved ", line)
	assert.Empty(t, m.toastLine(0))
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "hel…", truncateToWidth("hello", 4))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "hello", truncateToWidth("hello", 0))
}
