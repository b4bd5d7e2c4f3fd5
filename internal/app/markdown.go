package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	defaultMarkdownWidth = 40
	tooltipLinkColor     = "117"
	maxRenderedMarkdown  = 64
)

type markdownStyle struct {
	width int
	dark  bool
}

type renderedKey struct {
	markdownStyle
	input string
}

// markdownCache owns the glamour renderers and their output, keyed by width
// and background.
type markdownCache struct {
	mu        sync.Mutex
	dark      bool
	renderers map[markdownStyle]*glamour.TermRenderer
	rendered  map[renderedKey]string
}

var tooltipMarkdown = &markdownCache{
	dark:      true,
	renderers: map[markdownStyle]*glamour.TermRenderer{},
	rendered:  map[renderedKey]string{},
}

// renderMarkdown renders tooltip help text wrapped to width. Without a usable
// renderer the plain text is word wrapped instead.
func renderMarkdown(input string, width int) string {
	return tooltipMarkdown.render(input, width)
}

func markdownBackgroundDark() bool {
	tooltipMarkdown.mu.Lock()
	defer tooltipMarkdown.mu.Unlock()
	return tooltipMarkdown.dark
}

func setMarkdownBackgroundDark(dark bool) bool {
	return tooltipMarkdown.setDark(dark)
}

func (c *markdownCache) setDark(dark bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dark == dark {
		return false
	}
	c.dark = dark
	return true
}

func (c *markdownCache) render(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = defaultMarkdownWidth
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	key := renderedKey{markdownStyle: markdownStyle{width: width, dark: c.dark}, input: input}
	if out, ok := c.rendered[key]; ok {
		return out
	}
	out := xansi.Wordwrap(input, width, "")
	if r := c.rendererLocked(key.markdownStyle); r != nil {
		if styled, err := r.Render(input); err == nil {
			out = xansi.Hardwrap(strings.Trim(styled, "\n"), width, true)
		}
	}
	out = strings.TrimRight(out, "\n")
	if len(c.rendered) >= maxRenderedMarkdown {
		clear(c.rendered)
	}
	c.rendered[key] = out
	return out
}

func (c *markdownCache) rendererLocked(style markdownStyle) *glamour.TermRenderer {
	if r, ok := c.renderers[style]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(buildStyleConfig(style.dark)),
		glamour.WithWordWrap(style.width),
	)
	if err != nil {
		return nil
	}
	c.renderers[style] = r
	return r
}

func buildStyleConfig(dark bool) glamouransi.StyleConfig {
	base := styles.LightStyleConfig
	if dark {
		base = styles.DarkStyleConfig
	}
	// The tooltip frame supplies padding, so drop the document margins.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	base.Paragraph.Margin = &zero
	linkColor := tooltipLinkColor
	base.Link.Color = &linkColor
	base.LinkText.Color = &linkColor
	return base
}
