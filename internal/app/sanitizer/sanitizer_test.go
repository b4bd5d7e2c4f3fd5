package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sgr colour", input: "\x1b[31mred\x1b[0m", expected: "red"},
		{name: "cursor move", input: "\x1b[10;20Hpos", expected: "pos"},
		{name: "private mode", input: "\x1b[?25lhidden", expected: "hidden"},
		{name: "mouse report", input: strings.Repeat("\x1b[<65;113;33M", 3) + "text", expected: "text"},
		{name: "osc title bel", input: "\x1b]0;pwned\x07user", expected: "user"},
		{name: "osc hyperlink st", input: "\x1b]8;;https://evil\x1b\\click\x1b]8;;\x1b\\", expected: "click"},
		{name: "osc52 clipboard", input: "a\x1b]52;c;ZXZpbA==\x07b", expected: "ab"},
		{name: "dcs string", input: "\x1bPq#0;2;0;0;0\x1b\\ok", expected: "ok"},
		{name: "charset select", input: "\x1b(0line\x1b(B", expected: "line"},
		{name: "lone escape", input: "a\x1bb", expected: "ab"},
		{name: "plain text", input: "Hello, World!", expected: "Hello, World!"},
		{name: "unicode", input: "日本語テスト", expected: "日本語テスト"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripEscapes(tt.input))
		})
	}
}

func TestSingleLineFoldsBreaks(t *testing.T) {
	s := SingleLine()
	assert.Equal(t, "ada lovelace", s.Sanitize("ada\n\tlovelace\r\n"))
	assert.Equal(t, "", s.Sanitize(""))
}

func TestSanitizeDropsControlAndBidi(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, "abc", s.Sanitize("a\x00b\x7fc"))
	assert.Equal(t, "admin", s.Sanitize("\u202eadmin\u202c"))
	assert.Equal(t, "ab", s.Sanitize("a\nb"))
	assert.Equal(t, "a b", New(Config{LineBreak: " "}).Sanitize("a\nb"))
}

func TestSanitizeCapsWidth(t *testing.T) {
	s := New(Config{LineBreak: " ", MaxWidth: 6})
	assert.Equal(t, "hello…", s.Sanitize("hello world"))
	assert.Equal(t, "short", s.Sanitize("short"))
	assert.Equal(t, "日本…", s.Sanitize("日本語テスト"))
}

func TestChain(t *testing.T) {
	c := Chain{Nop{}, SingleLine(), New(Config{MaxWidth: 3})}
	assert.Equal(t, "a …", c.Sanitize("a\x1b[1m b c"))
}
