// Package sanitizer makes backend supplied strings safe to draw in a
// terminal cell grid.
package sanitizer

import (
	"strings"
	"unicode"

	xansi "github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

type Sanitizer interface {
	Sanitize(input string) string
}

type Config struct {
	// LineBreak replaces newlines and tabs. Empty drops them.
	LineBreak string
	// MaxWidth caps the result in terminal cells. Zero means unlimited.
	MaxWidth int
}

// Terminal removes escape sequences, control characters and bidi overrides.
type Terminal struct {
	config Config
}

func New(config Config) *Terminal {
	return &Terminal{config: config}
}

// SingleLine folds line breaks into spaces, for table cells and titles.
func SingleLine() *Terminal {
	return New(Config{LineBreak: " "})
}

func (s *Terminal) Sanitize(input string) string {
	if input == "" {
		return input
	}
	input = StripEscapes(input)

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteString(s.config.LineBreak)
		case isBidiControl(r):
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if s.config.LineBreak == " " {
		out = strings.Join(strings.Fields(out), " ")
	}
	if s.config.MaxWidth > 0 && xansi.StringWidth(out) > s.config.MaxWidth {
		out = xansi.Truncate(out, s.config.MaxWidth, ellipsis)
	}
	return out
}

func isBidiControl(r rune) bool {
	return (r >= '\u202a' && r <= '\u202e') || (r >= '\u2066' && r <= '\u2069') || r == '\u200e' || r == '\u200f'
}

type Chain []Sanitizer

func (c Chain) Sanitize(input string) string {
	for _, s := range c {
		input = s.Sanitize(input)
	}
	return input
}

type Nop struct{}

func (Nop) Sanitize(input string) string {
	return input
}
