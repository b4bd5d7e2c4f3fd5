package sanitizer

import "regexp"

// Sequences a recorded browser can smuggle into identifiers and field values.
var (
	csiPattern     = regexp.MustCompile(`\x1b\[[<>?=]?[0-9;:]*[ -/]*[@-~]`)
	oscPattern     = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)?`)
	stringPattern  = regexp.MustCompile(`\x1b[P^_X][^\x1b]*(?:\x1b\\)?`)
	charsetPattern = regexp.MustCompile(`\x1b[()*+][0-9A-Za-z]`)
	escapePattern  = regexp.MustCompile(`\x1b[@-Z\\-_]?`)
)

var escapePatterns = []*regexp.Regexp{
	oscPattern,
	stringPattern,
	csiPattern,
	charsetPattern,
	escapePattern,
}

// StripEscapes removes every escape sequence from input, leaving plain text.
func StripEscapes(input string) string {
	for _, p := range escapePatterns {
		input = p.ReplaceAllString(input, "")
	}
	return input
}
