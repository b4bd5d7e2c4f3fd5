package metadata

import humanize "github.com/dustin/go-humanize"

// FormatSize renders a byte count using binary units, e.g. "2.0 KiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
