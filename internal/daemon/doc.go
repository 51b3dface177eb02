// Package daemon provides supporting infrastructure for staxbard, such as
// configuration hot-reload.
package daemon
