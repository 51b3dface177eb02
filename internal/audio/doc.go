// Package audio plays the optional push chime.
package audio
