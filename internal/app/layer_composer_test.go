package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLayerComposerComposeOverlays(t *testing.T) {
	composer := NewTextLayerComposer()
	base := "line0\nline1\nline2\nline3"

	result := composer.Compose(base, []LayerOverlay{
		{Row: 1, Block: "A"},
		{Row: 2, Col: 2, Block: "B\nC"},
	})

	assert.Equal(t, "line0\nAine1\nliBe2\nliCe3", result)
}

func TestTextLayerComposerPadsShortLines(t *testing.T) {
	composer := NewTextLayerComposer()

	result := composer.Compose("ab\ncd", []LayerOverlay{{Row: 0, Col: 4, Block: "XY"}})

	assert.Equal(t, "ab  XY\ncd", result)
}

func TestTextLayerComposerClipsRowsOutsideBase(t *testing.T) {
	composer := NewTextLayerComposer()

	result := composer.Compose("one\ntwo", []LayerOverlay{{Row: 1, Block: "1\n2\n3"}})

	assert.Equal(t, "one\n1wo", result)
}

func TestTextLayerComposerLaterOverlaysWin(t *testing.T) {
	composer := NewTextLayerComposer()

	result := composer.Compose("......", []LayerOverlay{
		{Row: 0, Col: 0, Block: "aaaa"},
		{Row: 0, Col: 2, Block: "bb"},
	})

	assert.Equal(t, "aabb..", result)
}
