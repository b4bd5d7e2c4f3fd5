package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// LayerOverlay is a block drawn over the base layer with its top left cell at
// (Row, Col).
type LayerOverlay struct {
	Row   int
	Col   int
	Block string
}

type LayerComposer interface {
	Compose(base string, overlays []LayerOverlay) string
}

func WithLayerComposer(composer LayerComposer) ModelOption {
	return func(m *Model) {
		if m == nil || composer == nil {
			return
		}
		m.layerComposer = composer
	}
}

type textLayerComposer struct{}

func NewTextLayerComposer() LayerComposer {
	return textLayerComposer{}
}

// Compose draws overlays in order, so later overlays end up on top.
func (textLayerComposer) Compose(base string, overlays []LayerOverlay) string {
	if base == "" || len(overlays) == 0 {
		return base
	}
	canvas := newTextCanvas(base)
	for _, overlay := range overlays {
		canvas.OverlayBlock(overlay.Block, overlay.Row, overlay.Col)
	}
	return canvas.String()
}

type textCanvas struct {
	lines []string
}

func newTextCanvas(text string) textCanvas {
	return textCanvas{lines: strings.Split(text, "\n")}
}

func (c *textCanvas) OverlayBlock(block string, row, col int) {
	if c == nil || row < 0 || block == "" || len(c.lines) == 0 {
		return
	}
	if col < 0 {
		col = 0
	}
	lines := strings.Split(block, "\n")
	for i := 0; i < len(lines); i++ {
		target := row + i
		if target < 0 || target >= len(c.lines) {
			continue
		}
		c.lines[target] = spliceLine(c.lines[target], lines[i], col)
	}
}

func (c *textCanvas) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.lines, "\n")
}

// spliceLine replaces the cells of line under segment, padding line with
// spaces when it is shorter than col.
func spliceLine(line, segment string, col int) string {
	segmentWidth := xansi.StringWidth(segment)
	lineWidth := xansi.StringWidth(line)
	left := xansi.Truncate(line, col, "")
	if lineWidth < col {
		left += strings.Repeat(" ", col-lineWidth)
	}
	right := ""
	if lineWidth > col+segmentWidth {
		right = xansi.TruncateLeft(line, col+segmentWidth, "")
	}
	return left + segment + right
}
