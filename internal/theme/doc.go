// Package theme provides CSS theming for the status bar window. Themes are
// plain GTK CSS files; bundled themes are embedded in the binary and users
// can override them by dropping a file with the same name into
// ~/.config/staxbar/themes/.
package theme
