// Package colorscale implements gradient slider widgets for picking a hue
// or an alpha value. The hue variant renders the full HSV hue ramp across
// the trough; the alpha variant renders a checkerboard under a transparent
// to opaque ramp of a reference color.
package colorscale
