package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replayview/internal/types"
)

func TestMajorVersion(t *testing.T) {
	cases := map[string]string{
		"102.0.5":  "102",
		"15":       "15",
		" 10.15 ":  "10",
		"":         "",
		"   ":      "",
		"beta.1.2": "beta",
	}
	for input, want := range cases {
		assert.Equal(t, want, MajorVersion(input), "input %q", input)
	}
}

func TestBrowserSummary(t *testing.T) {
	line, ok := BrowserSummary(&types.Session{
		BrowserName:    "Chrome",
		BrowserVersion: "102.0.5005.61",
		OSName:         "Mac OS",
		OSVersion:      "10.15.7",
	})
	require.True(t, ok)
	assert.Equal(t, "Chrome 102 • Mac OS 10", line)

	line, ok = BrowserSummary(&types.Session{BrowserName: "Firefox", OSName: "Linux"})
	require.True(t, ok)
	assert.Equal(t, "Firefox  • Linux ", line)

	_, ok = BrowserSummary(&types.Session{OSName: "Linux", OSVersion: "5"})
	assert.False(t, ok)

	_, ok = BrowserSummary(nil)
	assert.False(t, ok)
}

func TestCreatedDateAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	created := time.Date(2022, time.June, 6, 20, 4, 9, 0, time.UTC)

	assert.Equal(t, "Monday, Jun 6, 2022", CreatedDate(created, loc))
	assert.Equal(t, "03:04:09 PM CDT", CreatedTime(created, loc))
	assert.Equal(t, "08:04:09 PM UTC", CreatedTime(created, time.UTC))
}

func TestDisplayIdentifier(t *testing.T) {
	assert.Equal(t, "jay@example.com", DisplayIdentifier(&types.Session{Identifier: "jay@example.com", Fingerprint: "9"}))
	assert.Equal(t, "#9", DisplayIdentifier(&types.Session{Fingerprint: "9", SecureID: "abc"}))
	assert.Equal(t, "abc", DisplayIdentifier(&types.Session{SecureID: "abc"}))
	assert.Equal(t, "", DisplayIdentifier(nil))
}

func TestAvatarInitials(t *testing.T) {
	assert.Equal(t, "JD", AvatarInitials("jane.doe@example.com"))
	assert.Equal(t, "AL", AvatarInitials("alice"))
	assert.Equal(t, "?", AvatarInitials(""))
	assert.Equal(t, "?", AvatarInitials("@@"))
}

func TestAvatarPaletteIndexIsStable(t *testing.T) {
	first := AvatarPaletteIndex("jane", 6)
	assert.Equal(t, first, AvatarPaletteIndex("jane", 6))
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 6)
	assert.Equal(t, 0, AvatarPaletteIndex("jane", 0))
}
