package colorscale

import "math"

// HSVToRGB converts HSV to RGB. All components are in [0, 1]; hue 1.0 wraps
// to 0.0.
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}

	h *= 6
	if h >= 6 {
		h = 0
	}
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// RGBToHSV converts RGB to HSV. All components are in [0, 1]. The hue of a
// grey is reported as 0.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max

	if max == 0 {
		return 0, 0, 0
	}

	delta := max - min
	s = delta / max
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case r:
		h = (g - b) / delta
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}

	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

// clamp01 clamps x into [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
