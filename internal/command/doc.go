// Package command defines the closed set of document mutation commands and
// the JSON decode boundary through which the chat/AI layer submits them.
//
// Operation kinds form a tagged variant: Params is a sealed interface and
// each kind carries its own typed payload struct. Dispatch over the set is
// an exhaustive type switch; the only place an unknown operation can appear
// is the JSON boundary, where it is rejected with ErrUnknownOperation.
package command
