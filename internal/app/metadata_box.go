package app

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"replayview/internal/metadata"
	"replayview/internal/star"
	"replayview/internal/types"
)

const (
	avatarWidth  = 6
	avatarHeight = 2
	avatarGap    = 1

	starFilled  = "★"
	starOutline = "☆"
	// icon plus one cell for the sync marker
	starCellWidth = 2
)

// metadataBox is the header of the sidebar: avatar, identity, created date
// and time, the browser line and the star affordance.
type metadataBox struct {
	session   *types.Session
	showStar  bool
	syncState star.SyncState
	location  *time.Location
	width     int
}

func (b metadataBox) View() string {
	width := max(avatarWidth+avatarGap+starCellWidth+4, b.width)
	textWidth := width - avatarWidth - avatarGap
	if b.session == nil {
		return b.skeleton(textWidth)
	}

	seed := cellSanitizer.Sanitize(metadata.DisplayIdentifier(b.session))
	avatar := avatarStyle(metadata.AvatarPaletteIndex(seed, len(avatarPalette))).
		Render(metadata.AvatarInitials(seed))

	lines := []string{b.identityLine(seed, textWidth)}
	lines = append(lines,
		subtleStyle.Render(truncateToWidth(metadata.CreatedDate(b.session.CreatedAt, b.location), textWidth)),
		subtleStyle.Render(truncateToWidth(metadata.CreatedTime(b.session.CreatedAt, b.location), textWidth)),
	)
	if summary, ok := metadata.BrowserSummary(b.session); ok {
		lines = append(lines, subtleStyle.Render(truncateToWidth(cellSanitizer.Sanitize(summary), textWidth)))
	}
	text := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, strings.Repeat(" ", avatarGap), text)
}

func (b metadataBox) identityLine(identity string, width int) string {
	if !b.showStar {
		return identityStyle.Render(truncateToWidth(identity, width))
	}
	nameWidth := max(1, width-starCellWidth-1)
	name := identityStyle.Render(truncateToWidth(identity, nameWidth))
	gap := max(1, width-lipgloss.Width(name)-starCellWidth)
	return name + strings.Repeat(" ", gap) + b.starCell()
}

func (b metadataBox) starCell() string {
	icon := starOffStyle.Render(starOutline)
	if b.session != nil && b.session.Starred {
		icon = starOnStyle.Render(starFilled)
	}
	switch b.syncState {
	case star.StatePending:
		return icon + starPendingStyle.Render("·")
	case star.StateFailed:
		return icon + starFailedStyle.Render("!")
	default:
		return icon + " "
	}
}

func (b metadataBox) skeleton(textWidth int) string {
	block := skeletonStyle.Render(strings.Repeat("░", avatarWidth))
	avatar := lipgloss.JoinVertical(lipgloss.Left, block, block)
	bars := lipgloss.JoinVertical(lipgloss.Left,
		skeletonStyle.Render(strings.Repeat("▒", max(1, textWidth*2/3))),
		skeletonStyle.Render(strings.Repeat("▒", max(1, textWidth/2))),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, strings.Repeat(" ", avatarGap), bars)
}

// starHit reports whether the cell (x, y), relative to the box origin, is on
// the star affordance.
func (b metadataBox) starHit(x, y int) bool {
	if !b.showStar || b.session == nil || y != 0 {
		return false
	}
	width := max(avatarWidth+avatarGap+starCellWidth+4, b.width)
	return x >= width-starCellWidth && x < width
}
