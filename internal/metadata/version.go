package metadata

import (
	"strings"

	"replayview/internal/types"
)

const browserSeparator = " • "

// MajorVersion returns the leading component of a dotted version string.
func MajorVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	major, _, _ := strings.Cut(version, ".")
	return major
}

// BrowserSummary renders "{browser} {major} • {os} {major}". The second return
// value is false when the session carries no browser name and the line should
// not be shown.
func BrowserSummary(session *types.Session) (string, bool) {
	if session == nil || strings.TrimSpace(session.BrowserName) == "" {
		return "", false
	}
	browser := session.BrowserName + " " + MajorVersion(session.BrowserVersion)
	os := session.OSName + " " + MajorVersion(session.OSVersion)
	return browser + browserSeparator + os, true
}
