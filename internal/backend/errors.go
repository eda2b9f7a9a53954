package backend

import "errors"

// Backend errors.
var (
	// ErrUnavailable indicates the document backend cannot be reached.
	ErrUnavailable = errors.New("document backend unavailable")

	// ErrNotLoaded indicates a property was read before a Sync that
	// followed its Load request.
	ErrNotLoaded = errors.New("property not loaded")

	// ErrNoSuchSheet indicates a sheet name did not resolve.
	ErrNoSuchSheet = errors.New("no such sheet")

	// ErrMissingSheet indicates a region reference without an explicit
	// sheet name where one is required.
	ErrMissingSheet = errors.New("region reference missing sheet name")

	// ErrInvalidAddress indicates an A1-style address that does not parse.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrDimensionMismatch indicates a grid whose shape does not match
	// the target range.
	ErrDimensionMismatch = errors.New("grid dimensions do not match range")
)
