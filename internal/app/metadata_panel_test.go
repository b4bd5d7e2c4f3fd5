package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replayview/internal/metadata"
)

func samplePanel() metadata.Panel {
	return metadata.Panel{
		Session: []metadata.Row{
			{Key: "Environment", Value: "Production", Tooltip: "help", Render: metadata.RenderString},
			{Key: "App Version", Value: "1.2.3", Render: metadata.RenderString},
		},
		User: []metadata.Row{
			{Key: "Identifier", Value: "Not Set", Render: metadata.RenderString},
		},
		Device: []metadata.Row{
			{Key: "Device ID", Value: "#991", Render: metadata.RenderLink, Link: "https://example.com"},
		},
	}
}

func TestRenderMetadataPanelSkeleton(t *testing.T) {
	layout := renderMetadataPanel(metadata.Panel{}, true, 40, 0)

	bars := 0
	for _, line := range strings.Split(xansi.Strip(layout.content), "\n") {
		if strings.Contains(line, "▒") {
			bars++
		}
	}
	assert.Equal(t, skeletonBarCount, bars)
	assert.Empty(t, layout.rows)
}

func TestRenderMetadataPanelRowLines(t *testing.T) {
	layout := renderMetadataPanel(samplePanel(), false, 60, 1)

	require.Len(t, layout.rows, 4)
	require.Len(t, layout.rowLines, 4)
	lines := strings.Split(xansi.Strip(layout.content), "\n")
	for i, row := range layout.rows {
		line := lines[layout.rowLines[i]]
		assert.Contains(t, line, row.Key, "row %d", i)
		assert.Contains(t, line, row.Value, "row %d", i)
	}
	assert.Contains(t, lines[layout.rowLines[1]], rowMarker)
	assert.NotContains(t, lines[layout.rowLines[0]], rowMarker)
	assert.Contains(t, lines[layout.rowLines[0]], "Environment ?")

	for _, title := range []string{"Session", "User", "Device"} {
		assert.Contains(t, layout.content, title)
	}
}

func TestRenderMetadataPanelKeepsEmptySections(t *testing.T) {
	panel := samplePanel()
	panel.Device = nil

	layout := renderMetadataPanel(panel, false, 60, 0)
	plain := xansi.Strip(layout.content)
	assert.Contains(t, plain, "Device")
	assert.NotContains(t, plain, "Device ID")
	require.Len(t, layout.rows, 3)
	assert.Less(t, strings.Index(plain, "User"), strings.Index(plain, "Device"))

	lines := strings.Split(plain, "\n")
	for i, row := range layout.rows {
		assert.Contains(t, lines[layout.rowLines[i]], row.Key, "row %d", i)
	}

	empty := renderMetadataPanel(metadata.Panel{}, false, 60, 0)
	for _, title := range []string{"Session", "User", "Device"} {
		assert.Contains(t, xansi.Strip(empty.content), title)
	}
	assert.Empty(t, empty.rows)
}

func TestPanelLayoutRowAt(t *testing.T) {
	layout := renderMetadataPanel(samplePanel(), false, 60, 0)

	idx, ok := layout.rowAt(layout.rowLines[3])
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = layout.rowAt(0)
	assert.False(t, ok)
}

func TestRenderMetadataPanelKeepsWidth(t *testing.T) {
	layout := renderMetadataPanel(samplePanel(), false, 50, 0)

	for _, line := range strings.Split(layout.content, "\n") {
		assert.Equal(t, 50, xansi.StringWidth(line))
	}
}

func TestSanitizePanelStripsEscapes(t *testing.T) {
	panel := sanitizePanel(metadata.Panel{
		User: []metadata.Row{
			{Key: "plan\x1b]0;title\x07", Value: "\x1b[31mpro\x1b[0m\nteam", Render: metadata.RenderString},
		},
		Device: []metadata.Row{
			{Key: "Device ID", Value: "#991", Render: metadata.RenderLink, Link: "https://example.com/?a=b"},
		},
	})

	assert.Nil(t, panel.Session)
	require.Len(t, panel.User, 1)
	assert.Equal(t, "plan", panel.User[0].Key)
	assert.Equal(t, "pro team", panel.User[0].Value)
	assert.Equal(t, "https://example.com/?a=b", panel.Device[0].Link)
}
