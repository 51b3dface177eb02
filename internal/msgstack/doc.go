// Package msgstack implements the context-scoped message stack that backs
// the status bar. Producers obtain a context id for a description string,
// push messages tagged with that id, and pop or remove them later. Only the
// most recently pushed message still on the stack is ever displayed.
package msgstack
