// Package dbus implements the io.github.jmylchreest.staxbar session-bus
// interface: the server side exported by staxbard and the client side used
// by the staxbar CLI. Producers push and pop status messages through it and
// observe the TextPushed/TextPopped signals.
package dbus
