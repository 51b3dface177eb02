package colorscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGB_Primaries(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		r, g, b float64
	}{
		{name: "red", h: 0, s: 1, v: 1, r: 1, g: 0, b: 0},
		{name: "yellow", h: 1.0 / 6.0, s: 1, v: 1, r: 1, g: 1, b: 0},
		{name: "green", h: 2.0 / 6.0, s: 1, v: 1, r: 0, g: 1, b: 0},
		{name: "cyan", h: 3.0 / 6.0, s: 1, v: 1, r: 0, g: 1, b: 1},
		{name: "blue", h: 4.0 / 6.0, s: 1, v: 1, r: 0, g: 0, b: 1},
		{name: "magenta", h: 5.0 / 6.0, s: 1, v: 1, r: 1, g: 0, b: 1},
		{name: "hue wraps", h: 1, s: 1, v: 1, r: 1, g: 0, b: 0},
		{name: "white", h: 0, s: 0, v: 1, r: 1, g: 1, b: 1},
		{name: "black", h: 0.5, s: 1, v: 0, r: 0, g: 0, b: 0},
		{name: "grey ignores hue", h: 0.7, s: 0, v: 0.5, r: 0.5, g: 0.5, b: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSVToRGB(tt.h, tt.s, tt.v)
			assert.InDelta(t, tt.r, r, 1e-9)
			assert.InDelta(t, tt.g, g, 1e-9)
			assert.InDelta(t, tt.b, b, 1e-9)
		})
	}
}

func TestRGBToHSV_RoundTrip(t *testing.T) {
	hues := []float64{0, 0.1, 0.25, 0.4, 0.55, 0.7, 0.85, 0.99}
	for _, hue := range hues {
		r, g, b := HSVToRGB(hue, 1, 1)
		h, s, v := RGBToHSV(r, g, b)
		assert.InDelta(t, hue, h, 1e-9)
		assert.InDelta(t, 1.0, s, 1e-9)
		assert.InDelta(t, 1.0, v, 1e-9)
	}
}

func TestRGBToHSV_Grey(t *testing.T) {
	h, s, v := RGBToHSV(0.5, 0.5, 0.5)
	assert.Zero(t, h)
	assert.Zero(t, s)
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 1.0, clamp01(1.5))
	assert.Equal(t, 0.25, clamp01(0.25))
}
