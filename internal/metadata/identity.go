package metadata

import (
	"hash/fnv"
	"strings"
	"unicode"

	"replayview/internal/types"
)

// DisplayIdentifier names the user behind a session: the identifier, then the
// device fingerprint, then the session id.
func DisplayIdentifier(session *types.Session) string {
	if session == nil {
		return ""
	}
	if id := strings.TrimSpace(session.Identifier); id != "" {
		return id
	}
	if fp := strings.TrimSpace(session.Fingerprint); fp != "" {
		return "#" + fp
	}
	return session.Key()
}

// AvatarInitials returns up to two upper-case letters or digits from seed.
func AvatarInitials(seed string) string {
	var out []rune
	for _, part := range strings.FieldsFunc(seed, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, r := range part {
			out = append(out, unicode.ToUpper(r))
			break
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 1 {
		runes := []rune(strings.TrimSpace(seed))
		for _, r := range runes[1:] {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// AvatarPaletteIndex picks a stable palette slot for seed.
func AvatarPaletteIndex(seed string, size int) int {
	if size <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return int(h.Sum32() % uint32(size))
}
