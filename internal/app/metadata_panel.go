package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"replayview/internal/app/sanitizer"
	"replayview/internal/metadata"
)

const (
	skeletonBarCount = 4
	rowMarker        = "›"
	rowHintMarker    = " ?"
	rowKeyGap        = 2
)

// Row keys and values come from the recorded page and may carry escape
// sequences.
var cellSanitizer sanitizer.Sanitizer = sanitizer.SingleLine()

func sanitizePanel(panel metadata.Panel) metadata.Panel {
	clean := func(rows []metadata.Row) []metadata.Row {
		if rows == nil {
			return nil
		}
		out := make([]metadata.Row, len(rows))
		for i, row := range rows {
			row.Key = cellSanitizer.Sanitize(row.Key)
			row.Value = cellSanitizer.Sanitize(row.Value)
			out[i] = row
		}
		return out
	}
	return metadata.Panel{
		Session: clean(panel.Session),
		User:    clean(panel.User),
		Device:  clean(panel.Device),
	}
}

type panelSection struct {
	title string
	rows  []metadata.Row
}

// panelLayout is a rendered panel plus the content line of every row, in the
// order rows are focused.
type panelLayout struct {
	content  string
	rows     []metadata.Row
	rowLines []int
	keyCol   int
	keyWidth int
}

// panelSections always yields all three tables; an empty one still draws its
// titled card.
func panelSections(panel metadata.Panel) []panelSection {
	return []panelSection{
		{title: "Session", rows: panel.Session},
		{title: "User", rows: panel.User},
		{title: "Device", rows: panel.Device},
	}
}

// renderMetadataPanel lays the three tables out as cards. focus is the index
// of the highlighted row, -1 for none.
func renderMetadataPanel(panel metadata.Panel, loading bool, width, focus int) panelLayout {
	width = max(minPanelWidth, width)
	innerWidth := max(1, width-cardStyle.GetHorizontalFrameSize())
	if loading {
		return panelLayout{content: panelSkeleton(innerWidth)}
	}

	sections := panelSections(panel)
	keyWidth := 0
	for _, section := range sections {
		for _, row := range section.rows {
			keyWidth = max(keyWidth, runewidth.StringWidth(rowLabel(row)))
		}
	}
	keyWidth = min(keyWidth, max(1, innerWidth/2))

	layout := panelLayout{
		keyCol:   cardStyle.GetBorderLeftSize() + cardStyle.GetPaddingLeft() + runewidth.StringWidth(rowMarker) + 1,
		keyWidth: keyWidth,
	}
	var cards []string
	line := 0
	index := 0
	for _, section := range sections {
		body := []string{cardTitleStyle.Render(section.title)}
		for _, row := range section.rows {
			layout.rows = append(layout.rows, row)
			// +1 skips the card's top border
			layout.rowLines = append(layout.rowLines, line+1+len(body))
			body = append(body, renderPanelRow(row, keyWidth, innerWidth, index == focus))
			index++
		}
		card := cardStyle.Render(padLines(body, innerWidth))
		cards = append(cards, card)
		line += lipgloss.Height(card)
	}
	layout.content = strings.Join(cards, "\n")
	return layout
}

func rowLabel(row metadata.Row) string {
	if row.Tooltip != "" {
		return row.Key + rowHintMarker
	}
	return row.Key
}

func renderPanelRow(row metadata.Row, keyWidth, innerWidth int, focused bool) string {
	marker := " "
	keyStyle := rowKeyStyle
	if focused {
		marker = rowMarker
		keyStyle = selectedStyle
	}
	text := truncateToWidth(rowLabel(row), keyWidth)
	label := keyStyle.Render(text)
	if row.Tooltip != "" && strings.HasSuffix(text, rowHintMarker) {
		label = keyStyle.Render(strings.TrimSuffix(text, rowHintMarker)) + rowHintStyle.Render(rowHintMarker)
	}
	if pad := keyWidth - runewidth.StringWidth(text); pad > 0 {
		label += strings.Repeat(" ", pad)
	}

	valueWidth := max(1, innerWidth-runewidth.StringWidth(marker)-1-keyWidth-rowKeyGap)
	value := truncateToWidth(row.Value, valueWidth)
	if row.Render == metadata.RenderLink {
		value = linkStyle.Render(value)
	} else {
		value = rowValueStyle.Render(value)
	}
	return marker + " " + label + strings.Repeat(" ", rowKeyGap) + value
}

func panelSkeleton(innerWidth int) string {
	widths := []int{innerWidth, innerWidth * 3 / 4, innerWidth / 2, innerWidth * 2 / 3}
	bars := make([]string, 0, skeletonBarCount)
	for i := 0; i < skeletonBarCount; i++ {
		bars = append(bars, skeletonStyle.Render(strings.Repeat("▒", max(1, widths[i]))))
	}
	return cardStyle.Render(padLines(bars, innerWidth))
}

// rowAt maps a content line to the row drawn on it.
func (l panelLayout) rowAt(line int) (int, bool) {
	for i, rowLine := range l.rowLines {
		if rowLine == line {
			return i, true
		}
	}
	return -1, false
}

func padLines(lines []string, width int) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if lineWidth := xansi.StringWidth(line); lineWidth < width {
			line += strings.Repeat(" ", width-lineWidth)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}
