package app

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

const defaultToastDuration = 3 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

func (m *Model) showInfoToast(message string) {
	m.showToast(toastLevelInfo, message, defaultToastDuration)
}

func (m *Model) showWarningToast(message string) {
	m.showToast(toastLevelWarning, message, defaultToastDuration)
}

func (m *Model) showErrorToast(message string) {
	m.showToast(toastLevelError, message, defaultToastDuration)
}

func (m *Model) showToast(level toastLevel, message string, duration time.Duration) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if duration <= 0 {
		duration = defaultToastDuration
	}
	m.toastText = message
	m.toastLevel = level
	m.toastUntil = m.now().Add(duration)
	m.toastsShown++
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastLevel = toastLevelInfo
	m.toastUntil = time.Time{}
}

func (m *Model) toastActive(at time.Time) bool {
	if strings.TrimSpace(m.toastText) == "" {
		return false
	}
	if m.toastUntil.IsZero() {
		return true
	}
	if at.IsZero() {
		at = m.now()
	}
	return at.Before(m.toastUntil)
}

func (m *Model) expireToast(at time.Time) {
	if m.toastText != "" && !m.toastActive(at) {
		m.clearToast()
	}
}

func (m *Model) toastLine(width int) string {
	if !m.toastActive(m.now()) || width <= 0 {
		return ""
	}
	text := truncateToWidth(m.toastText, max(1, width-4))
	pill := m.toastStyle().Render(" " + text + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func (m *Model) toastStyle() lipgloss.Style {
	switch m.toastLevel {
	case toastLevelWarning:
		return toastWarningStyle
	case toastLevelError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}
