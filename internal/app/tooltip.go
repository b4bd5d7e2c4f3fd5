package app

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type TooltipPlacement string

const (
	TooltipTop    TooltipPlacement = "top"
	TooltipBottom TooltipPlacement = "bottom"
	TooltipLeft   TooltipPlacement = "left"
	TooltipRight  TooltipPlacement = "right"
)

// Sizes are given in CSS pixels and mapped onto cells of this size.
const (
	cellHeightPx = 16
	cellWidthPx  = 8

	defaultTooltipGutterPx   = 4
	defaultTooltipMaxWidthPx = 350
)

type tooltipOptions struct {
	placement  TooltipPlacement
	gutterPx   int
	maxWidthPx int
	open       *bool
	disabled   bool
}

type TooltipOption func(*tooltipOptions)

func WithTooltipPlacement(placement TooltipPlacement) TooltipOption {
	return func(o *tooltipOptions) {
		switch placement {
		case TooltipTop, TooltipBottom, TooltipLeft, TooltipRight:
			o.placement = placement
		}
	}
}

func WithTooltipGutter(px int) TooltipOption {
	return func(o *tooltipOptions) {
		if px >= 0 {
			o.gutterPx = px
		}
	}
}

func WithTooltipMaxWidth(px int) TooltipOption {
	return func(o *tooltipOptions) {
		if px > 0 {
			o.maxWidthPx = px
		}
	}
}

// WithTooltipOpen forces the tooltip shown or hidden regardless of hover and
// focus.
func WithTooltipOpen(open bool) TooltipOption {
	return func(o *tooltipOptions) {
		o.open = &open
	}
}

func WithTooltipDisabled(disabled bool) TooltipOption {
	return func(o *tooltipOptions) {
		o.disabled = disabled
	}
}

// Tooltip pairs a trigger with markdown help text shown in a floating card.
type Tooltip struct {
	content string
	opts    tooltipOptions
}

func NewTooltip(content string, opts ...TooltipOption) Tooltip {
	t := Tooltip{
		content: strings.TrimSpace(content),
		opts: tooltipOptions{
			placement:  TooltipTop,
			gutterPx:   defaultTooltipGutterPx,
			maxWidthPx: defaultTooltipMaxWidthPx,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&t.opts)
		}
	}
	return t
}

func (t Tooltip) Placement() TooltipPlacement {
	return t.opts.placement
}

// Trigger returns the wrapped element unchanged.
func (t Tooltip) Trigger(view string) string {
	return view
}

// Visible resolves the show state from the caller's hover/focus signal and the
// configured overrides.
func (t Tooltip) Visible(active bool) bool {
	if t.opts.disabled || t.content == "" {
		return false
	}
	if t.opts.open != nil {
		return *t.opts.open
	}
	return active
}

func (t Tooltip) GutterCells() (rows, cols int) {
	return pxToCells(t.opts.gutterPx, cellHeightPx), pxToCells(t.opts.gutterPx, cellWidthPx)
}

// MaxWidthCells is the outer width limit of the card, border included.
func (t Tooltip) MaxWidthCells() int {
	return max(8, pxToCells(t.opts.maxWidthPx, cellWidthPx))
}

// Render draws the card. The body is rendered as markdown and wrapped to the
// card's inner width.
func (t Tooltip) Render() string {
	if t.content == "" {
		return ""
	}
	frame := tooltipFrameStyle
	inner := max(1, t.MaxWidthCells()-frame.GetHorizontalFrameSize())
	body := renderMarkdown(t.content, inner)
	if strings.TrimSpace(body) == "" {
		body = t.content
	}
	return frame.Render(body)
}

// TooltipAnchor is the screen rectangle of the trigger.
type TooltipAnchor struct {
	Row   int
	Col   int
	Width int
}

// Overlay positions the rendered card next to anchor inside a screen of
// width x height cells. Vertical placements flip to the other side when the
// preferred side lacks room.
func (t Tooltip) Overlay(anchor TooltipAnchor, width, height int) (LayerOverlay, bool) {
	block := t.Render()
	if block == "" || width <= 0 || height <= 0 {
		return LayerOverlay{}, false
	}
	blockWidth := lipgloss.Width(block)
	blockHeight := lipgloss.Height(block)
	gutterRows, gutterCols := t.GutterCells()
	anchorWidth := max(1, anchor.Width)

	above := anchor.Row - gutterRows - blockHeight
	below := anchor.Row + 1 + gutterRows
	row, col := above, anchor.Col
	switch t.opts.placement {
	case TooltipTop:
		if above < 0 && below+blockHeight <= height {
			row = below
		}
	case TooltipBottom:
		row = below
		if below+blockHeight > height && above >= 0 {
			row = above
		}
	case TooltipLeft:
		row = anchor.Row
		col = anchor.Col - gutterCols - blockWidth
	case TooltipRight:
		row = anchor.Row
		col = anchor.Col + anchorWidth + gutterCols
	}
	row = clamp(row, 0, max(0, height-blockHeight))
	col = clamp(col, 0, max(0, width-blockWidth))
	return LayerOverlay{Row: row, Col: col, Block: block}, true
}

func pxToCells(px, cellPx int) int {
	if px <= 0 || cellPx <= 0 {
		return 0
	}
	return (px + cellPx - 1) / cellPx
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
