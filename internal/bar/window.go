package bar

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/staxbar/internal/config"
)

// Bar is the status bar window. It displays only the topmost message of the
// stack; the daemon feeds it through SetText on every push and pop.
type Bar struct {
	window *gtk.Window
	logger *slog.Logger
	cfg    *config.DaemonConfig

	messageLbl *gtk.Label
	depthLbl   *gtk.Label
	accent     *accentControl
}

// New creates the bar window for the given application. The window is not
// shown until Present is called.
func New(app *gtk.Application, cfg *config.DaemonConfig, logger *slog.Logger) *Bar {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bar{
		logger: logger,
		cfg:    cfg,
	}

	b.window = gtk.NewWindow()
	b.window.SetApplication(app)
	b.window.SetDecorated(false)
	b.window.SetResizable(false)
	b.window.AddCSSClass("staxbar")

	layershell.InitForWindow(b.window)
	layershell.SetLayer(b.window, layershell.LayerShellLayerTop)
	layershell.SetKeyboardMode(b.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(b.window, "staxbar")

	b.buildUI()
	b.applyLayout(cfg)

	return b
}

// buildUI assembles the bar contents: message label, depth indicator,
// accent button.
func (b *Bar) buildUI() {
	box := gtk.NewBox(gtk.OrientationHorizontal, 0)

	b.messageLbl = gtk.NewLabel("")
	b.messageLbl.AddCSSClass("staxbar-message")
	b.messageLbl.AddCSSClass("empty")
	b.messageLbl.SetXAlign(0)
	b.messageLbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	b.messageLbl.SetHExpand(true)
	box.Append(b.messageLbl)

	b.depthLbl = gtk.NewLabel("")
	b.depthLbl.AddCSSClass("staxbar-depth")
	b.depthLbl.SetVisible(false)
	box.Append(b.depthLbl)

	b.accent = newAccentControl(b.cfg.Accent, b.logger)
	box.Append(b.accent.button)

	b.window.SetChild(box)
}

// applyLayout positions the bar according to config: anchored to the left
// and right edges and to either the top or the bottom, reserving its height
// as an exclusive zone when configured.
func (b *Bar) applyLayout(cfg *config.DaemonConfig) {
	b.cfg = cfg

	b.window.SetDefaultSize(-1, cfg.Bar.Height)
	b.window.SetSizeRequest(-1, cfg.Bar.Height)

	layershell.SetAnchor(b.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeRight, true)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeTop, cfg.Bar.Position == config.PositionTop)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeBottom, cfg.Bar.Position == config.PositionBottom)

	layershell.SetMargin(b.window, layershell.LayerShellEdgeLeft, cfg.Bar.MarginX)
	layershell.SetMargin(b.window, layershell.LayerShellEdgeRight, cfg.Bar.MarginX)
	if cfg.Bar.Position == config.PositionTop {
		layershell.SetMargin(b.window, layershell.LayerShellEdgeTop, cfg.Bar.MarginY)
	} else {
		layershell.SetMargin(b.window, layershell.LayerShellEdgeBottom, cfg.Bar.MarginY)
	}

	if cfg.Bar.ExclusiveZone {
		layershell.SetExclusiveZone(b.window, cfg.Bar.Height+cfg.Bar.MarginY)
	} else {
		layershell.SetExclusiveZone(b.window, 0)
	}

	b.applyColorScheme(cfg.Theme.ColorScheme)
	b.accent.apply()
}

// applyColorScheme tags the window with a "light" or "dark" class so themes
// can branch on it. "system" follows the libadwaita preference.
func (b *Bar) applyColorScheme(scheme string) {
	class := scheme
	if scheme == config.ColorSchemeSystem {
		if adw.StyleManagerGetDefault().Dark() {
			class = config.ColorSchemeDark
		} else {
			class = config.ColorSchemeLight
		}
	}
	b.window.RemoveCSSClass(config.ColorSchemeLight)
	b.window.RemoveCSSClass(config.ColorSchemeDark)
	b.window.AddCSSClass(class)
}

// ApplyConfig repositions the bar after a config reload.
func (b *Bar) ApplyConfig(cfg *config.DaemonConfig) {
	b.applyLayout(cfg)
	b.logger.Info("bar layout updated",
		"position", cfg.Bar.Position,
		"height", cfg.Bar.Height)
}

// SetText shows the current top of the stack. An empty stack is reported as
// contextID 0 with empty text.
func (b *Bar) SetText(contextID uint32, text string) {
	b.messageLbl.SetText(text)
	if text == "" && contextID == 0 {
		b.messageLbl.AddCSSClass("empty")
		b.messageLbl.RemoveCSSClass("has-message")
	} else {
		b.messageLbl.RemoveCSSClass("empty")
		b.messageLbl.AddCSSClass("has-message")
	}
}

// SetDepth shows how many messages are stacked behind the visible one.
func (b *Bar) SetDepth(depth int) {
	if depth > 1 {
		b.depthLbl.SetText(fmt.Sprintf("+%d", depth-1))
		b.depthLbl.SetVisible(true)
	} else {
		b.depthLbl.SetVisible(false)
	}
}

// SetAccentChangedCallback registers a callback fired whenever the user
// picks a new accent hue or alpha.
func (b *Bar) SetAccentChangedCallback(fn func(hue, alpha float64)) {
	b.accent.onChanged = fn
}

// Present shows the bar.
func (b *Bar) Present() {
	b.window.Present()
}

// Close destroys the bar window.
func (b *Bar) Close() {
	b.window.Close()
}
