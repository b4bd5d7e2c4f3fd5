package app

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTooltipDefaults(t *testing.T) {
	tip := NewTooltip("help")

	assert.Equal(t, TooltipTop, tip.Placement())
	rows, cols := tip.GutterCells()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 44, tip.MaxWidthCells())
}

func TestTooltipOptionsOverrideDefaults(t *testing.T) {
	tip := NewTooltip("help",
		WithTooltipPlacement(TooltipRight),
		WithTooltipGutter(20),
		WithTooltipMaxWidth(160),
		WithTooltipPlacement("diagonal"),
	)

	assert.Equal(t, TooltipRight, tip.Placement())
	rows, cols := tip.GutterCells()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 20, tip.MaxWidthCells())
}

func TestTooltipVisibility(t *testing.T) {
	tip := NewTooltip("help")
	assert.False(t, tip.Visible(false))
	assert.True(t, tip.Visible(true))

	assert.True(t, NewTooltip("help", WithTooltipOpen(true)).Visible(false))
	assert.False(t, NewTooltip("help", WithTooltipOpen(false)).Visible(true))
	assert.False(t, NewTooltip("help", WithTooltipDisabled(true), WithTooltipOpen(true)).Visible(true))
	assert.False(t, NewTooltip("  ").Visible(true))
}

func TestTooltipTriggerIsUnchanged(t *testing.T) {
	assert.Equal(t, "Environment", NewTooltip("help").Trigger("Environment"))
}

func TestTooltipRenderRespectsMaxWidth(t *testing.T) {
	tip := NewTooltip(strings.Repeat("word ", 60))

	card := tip.Render()
	require.NotEmpty(t, card)
	assert.LessOrEqual(t, lipgloss.Width(card), tip.MaxWidthCells())
	assert.Contains(t, xansi.Strip(card), "word")
}

func TestTooltipOverlayAboveAnchorWithGutter(t *testing.T) {
	tip := NewTooltip("short help")
	height := lipgloss.Height(tip.Render())

	overlay, ok := tip.Overlay(TooltipAnchor{Row: 20, Col: 3, Width: 10}, 80, 30)
	require.True(t, ok)
	assert.Equal(t, 20-1-height, overlay.Row)
	assert.Equal(t, 3, overlay.Col)
}

func TestTooltipOverlayFlipsBelowWhenNoRoomAbove(t *testing.T) {
	tip := NewTooltip("short help")

	overlay, ok := tip.Overlay(TooltipAnchor{Row: 1, Col: 0, Width: 4}, 80, 30)
	require.True(t, ok)
	assert.Equal(t, 3, overlay.Row)
}

func TestTooltipOverlayRightOfAnchor(t *testing.T) {
	tip := NewTooltip("short help", WithTooltipPlacement(TooltipRight))

	overlay, ok := tip.Overlay(TooltipAnchor{Row: 5, Col: 2, Width: 6}, 120, 30)
	require.True(t, ok)
	assert.Equal(t, 5, overlay.Row)
	assert.Equal(t, 2+6+1, overlay.Col)
}

func TestTooltipOverlayClampsToScreen(t *testing.T) {
	tip := NewTooltip("short help", WithTooltipPlacement(TooltipLeft))

	overlay, ok := tip.Overlay(TooltipAnchor{Row: 5, Col: 2, Width: 6}, 120, 30)
	require.True(t, ok)
	assert.Equal(t, 0, overlay.Col)

	_, ok = tip.Overlay(TooltipAnchor{}, 0, 0)
	assert.False(t, ok)
}
