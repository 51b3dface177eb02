package bar

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/staxbar/internal/colorscale"
	"github.com/jmylchreest/staxbar/internal/config"
)

// accentControl is the accent swatch button and its popover with the hue
// and alpha scales. Picked values are pushed into a runtime CSS provider so
// the accent changes without reloading the theme.
type accentControl struct {
	logger *slog.Logger

	button   *gtk.MenuButton
	popover  *gtk.Popover
	hueScale *colorscale.ColorScale
	alpha    *colorscale.ColorScale

	provider *gtk.CSSProvider
	attached bool

	hue, alphaVal float64

	onChanged func(hue, alpha float64)
}

func newAccentControl(accent config.AccentConfig, logger *slog.Logger) *accentControl {
	a := &accentControl{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		hue:      accent.Hue,
		alphaVal: accent.Alpha,
	}

	box := gtk.NewBox(gtk.OrientationVertical, 8)

	a.hueScale = colorscale.New(colorscale.ScaleHue, a.hue)
	a.hueScale.ConnectValueChanged(func(value float64) {
		a.hue = value
		a.pick()
	})
	box.Append(a.hueScale)

	a.alpha = colorscale.New(colorscale.ScaleAlpha, a.alphaVal)
	a.alpha.SetRGBA(hueToRGB(a.hue))
	a.alpha.ConnectValueChanged(func(value float64) {
		a.alphaVal = value
		a.pick()
	})
	box.Append(a.alpha)

	a.popover = gtk.NewPopover()
	a.popover.AddCSSClass("staxbar-accent")
	a.popover.SetChild(box)

	// Long press on either scale collapses the popover, mirroring a
	// context-menu dismissal.
	hold := func() { a.popover.Popdown() }
	a.hueScale.SetHoldCallback(hold)
	a.alpha.SetHoldCallback(hold)

	a.button = gtk.NewMenuButton()
	a.button.AddCSSClass("staxbar-accent-button")
	a.button.SetPopover(a.popover)

	return a
}

// pick applies a user-driven value change and notifies the owner.
func (a *accentControl) pick() {
	a.alpha.SetRGBA(hueToRGB(a.hue))
	a.apply()
	if a.onChanged != nil {
		a.onChanged(a.hue, a.alphaVal)
	}
}

// apply loads the accent CSS into the display-wide provider.
func (a *accentControl) apply() {
	a.provider.LoadFromString(accentCSS(a.hue, a.alphaVal))

	if !a.attached {
		display := gdk.DisplayGetDefault()
		if display == nil {
			a.logger.Warn("no display available, cannot apply accent")
			return
		}
		gtk.StyleContextAddProviderForDisplay(
			display,
			a.provider,
			gtk.STYLE_PROVIDER_PRIORITY_USER,
		)
		a.attached = true
	}
}

// hueToRGB returns the fully saturated color for a hue.
func hueToRGB(hue float64) (r, g, b float64) {
	return colorscale.HSVToRGB(hue, 1, 1)
}

// accentCSS renders the runtime accent stylesheet.
func accentCSS(hue, alpha float64) string {
	r, g, b := hueToRGB(hue)
	rgba := fmt.Sprintf("rgba(%d, %d, %d, %.3f)",
		int(r*255), int(g*255), int(b*255), alpha)

	return fmt.Sprintf(
		"window.staxbar { border-top: 2px solid %s; }\n"+
			".staxbar-accent-button { background-color: %s; }\n",
		rgba, rgba)
}
