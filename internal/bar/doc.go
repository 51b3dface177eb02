// Package bar renders the status bar itself: a layer-shell window anchored
// to a screen edge showing the topmost stack message, a stack depth
// indicator, and an accent color popover.
package bar
