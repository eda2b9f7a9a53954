package backend

import (
	"fmt"
	"strings"
)

// RegionRef identifies a rectangular region by sheet name and A1 address.
//
// The sheet name is required wherever a RegionRef is used for snapshot
// capture or restore. Resolving an unnamed region against whichever sheet
// happens to be active is a correctness hazard: capture and restore could
// land on different sheets.
type RegionRef struct {
	Sheet   string
	Address string
}

// Key returns the canonical "Sheet!Address" form of the reference.
func (r RegionRef) Key() string {
	return r.Sheet + "!" + r.Address
}

// String returns the canonical key form.
func (r RegionRef) String() string {
	return r.Key()
}

// Validate checks that the reference names a sheet and a parseable address.
func (r RegionRef) Validate() error {
	if r.Sheet == "" {
		return fmt.Errorf("%w: %q", ErrMissingSheet, r.Address)
	}
	if r.Address == "" {
		return fmt.Errorf("%w: empty address on sheet %q", ErrInvalidAddress, r.Sheet)
	}
	if _, err := ParseAddress(r.Address); err != nil {
		return err
	}
	return nil
}

// ParseRegionKey parses a "Sheet!Address" key back into a RegionRef.
func ParseRegionKey(key string) (RegionRef, error) {
	i := strings.LastIndex(key, "!")
	if i <= 0 || i == len(key)-1 {
		return RegionRef{}, fmt.Errorf("%w: region key %q", ErrInvalidAddress, key)
	}
	ref := RegionRef{Sheet: key[:i], Address: key[i+1:]}
	if err := ref.Validate(); err != nil {
		return RegionRef{}, err
	}
	return ref, nil
}
