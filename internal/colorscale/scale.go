package colorscale

import (
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// ScaleType selects which channel a ColorScale edits.
type ScaleType int

const (
	// ScaleHue renders the full hue ramp and picks a hue in [0, 1].
	ScaleHue ScaleType = iota
	// ScaleAlpha renders a transparency ramp of the reference color and
	// picks an alpha in [0, 1].
	ScaleAlpha
)

const checkerSize = 8

// ColorScale is a horizontal gradient slider drawn on a gtk.DrawingArea.
// Click or drag anywhere on the trough to pick a value; a long press fires
// the hold callback.
type ColorScale struct {
	*gtk.DrawingArea

	scaleType ScaleType
	value     float64

	// reference color for the alpha ramp
	refR, refG, refB float64

	dragStartX float64

	valueChanged []func(float64)
	onHold       func()
}

// New creates a color scale of the given type with an initial value.
func New(scaleType ScaleType, value float64) *ColorScale {
	s := &ColorScale{
		DrawingArea: gtk.NewDrawingArea(),
		scaleType:   scaleType,
		value:       clamp01(value),
		refR:        1, refG: 0, refB: 0,
	}

	s.SetContentWidth(180)
	s.SetContentHeight(18)
	s.AddCSSClass("staxbar-scale")
	s.SetDrawFunc(s.draw)

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectPressed(func(nPress int, x, y float64) {
		s.pickAt(x)
	})
	s.AddController(click)

	drag := gtk.NewGestureDrag()
	drag.ConnectDragBegin(func(startX, startY float64) {
		s.dragStartX = startX
	})
	drag.ConnectDragUpdate(func(offsetX, offsetY float64) {
		s.pickAt(s.dragStartX + offsetX)
	})
	s.AddController(drag)

	hold := gtk.NewGestureLongPress()
	hold.ConnectPressed(func(x, y float64) {
		if s.onHold != nil {
			s.onHold()
		}
	})
	s.AddController(hold)

	return s
}

// SetRGBA sets the reference color used by the alpha ramp.
func (s *ColorScale) SetRGBA(r, g, b float64) {
	s.refR, s.refG, s.refB = r, g, b
	s.QueueDraw()
}

// SetValue sets the current value without firing callbacks.
func (s *ColorScale) SetValue(value float64) {
	s.value = clamp01(value)
	s.QueueDraw()
}

// Value returns the current value in [0, 1].
func (s *ColorScale) Value() float64 {
	return s.value
}

// ConnectValueChanged registers a callback fired on every user-driven value
// change.
func (s *ColorScale) ConnectValueChanged(fn func(value float64)) {
	s.valueChanged = append(s.valueChanged, fn)
}

// SetHoldCallback sets the callback fired on a long press.
func (s *ColorScale) SetHoldCallback(fn func()) {
	s.onHold = fn
}

// pickAt converts an x coordinate to a value and notifies listeners.
func (s *ColorScale) pickAt(x float64) {
	width := s.AllocatedWidth()
	if width <= 1 {
		return
	}

	s.value = clamp01(x / float64(width-1))
	s.QueueDraw()
	for _, fn := range s.valueChanged {
		fn(s.value)
	}
}

func (s *ColorScale) draw(_ *gtk.DrawingArea, cr *cairo.Context, width, height int) {
	if width <= 1 || height <= 1 {
		return
	}

	switch s.scaleType {
	case ScaleHue:
		s.drawHueRamp(cr, width, height)
	case ScaleAlpha:
		s.drawAlphaRamp(cr, width, height)
	}

	s.drawMarker(cr, width, height)
}

// drawHueRamp paints the hue spectrum column by column at full saturation
// and value.
func (s *ColorScale) drawHueRamp(cr *cairo.Context, width, height int) {
	f := 1.0 / float64(width-1)
	for x := 0; x < width; x++ {
		h := clamp01(float64(x) * f)
		r, g, b := HSVToRGB(h, 1, 1)
		cr.SetSourceRGB(r, g, b)
		cr.Rectangle(float64(x), 0, 1, float64(height))
		cr.Fill()
	}
}

// drawAlphaRamp paints a grey checkerboard under a transparent to opaque
// ramp of the reference color.
func (s *ColorScale) drawAlphaRamp(cr *cairo.Context, width, height int) {
	cr.SetSourceRGB(0.33, 0.33, 0.33)
	cr.Paint()

	cr.SetSourceRGB(0.66, 0.66, 0.66)
	for y := 0; y*checkerSize < height; y++ {
		for x := 0; x*checkerSize < width; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			cr.Rectangle(float64(x*checkerSize), float64(y*checkerSize), checkerSize, checkerSize)
		}
	}
	cr.Fill()

	f := 1.0 / float64(width-1)
	for x := 0; x < width; x++ {
		cr.SetSourceRGBA(s.refR, s.refG, s.refB, clamp01(float64(x)*f))
		cr.Rectangle(float64(x), 0, 1, float64(height))
		cr.Fill()
	}
}

// drawMarker draws the pick indicator at the current value.
func (s *ColorScale) drawMarker(cr *cairo.Context, width, height int) {
	x := s.value * float64(width-1)

	cr.SetLineWidth(3)
	cr.SetSourceRGB(0, 0, 0)
	cr.MoveTo(x, 0)
	cr.LineTo(x, float64(height))
	cr.Stroke()

	cr.SetLineWidth(1)
	cr.SetSourceRGB(1, 1, 1)
	cr.MoveTo(x, 0)
	cr.LineTo(x, float64(height))
	cr.Stroke()
}
