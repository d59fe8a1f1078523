package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKnown(t *testing.T) {
	p := Get("reference")
	assert.Equal(t, 256, p.MaxWidth)
	assert.Equal(t, 256, p.MaxHeight)
	assert.Empty(t, p.PreviewFormat)
	assert.True(t, Known("large"))
}

func TestGetUnknownFallsBack(t *testing.T) {
	p := Get("custom")
	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, 256, p.MaxWidth)
	assert.False(t, Known("custom"))
}

func TestLimits(t *testing.T) {
	lim := Get("standard").Limits()
	assert.Equal(t, 4096, lim.MaxWidth)
	assert.Equal(t, 4096, lim.MaxHeight)
}

func TestPreviewSize(t *testing.T) {
	p := Profile{PreviewWidth: 100}
	w, h := p.PreviewSize(400, 300)
	assert.Equal(t, 100, w)
	assert.Equal(t, 75, h)

	// No upscale.
	w, h = p.PreviewSize(50, 20)
	assert.Equal(t, 50, w)
	assert.Equal(t, 20, h)

	// Very wide images keep at least one row.
	w, h = p.PreviewSize(10000, 2)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)

	w, h = Profile{}.PreviewSize(7, 9)
	assert.Equal(t, 7, w)
	assert.Equal(t, 9, h)
}
