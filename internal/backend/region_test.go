package backend

import (
	"errors"
	"testing"
)

func TestRegionRefKey(t *testing.T) {
	ref := RegionRef{Sheet: "Summary", Address: "B2:D10"}
	if ref.Key() != "Summary!B2:D10" {
		t.Errorf("wrong key: %s", ref.Key())
	}
}

func TestRegionRefValidateRequiresSheet(t *testing.T) {
	ref := RegionRef{Address: "A1"}
	if err := ref.Validate(); !errors.Is(err, ErrMissingSheet) {
		t.Errorf("expected ErrMissingSheet, got %v", err)
	}
}

func TestRegionRefValidateAddress(t *testing.T) {
	ref := RegionRef{Sheet: "Sheet1", Address: "not-an-address"}
	if err := ref.Validate(); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress, got %v", err)
	}
	ref.Address = ""
	if err := ref.Validate(); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress for empty address, got %v", err)
	}
}

func TestParseRegionKey(t *testing.T) {
	ref, err := ParseRegionKey("Q3 Data!A1:C3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ref.Sheet != "Q3 Data" || ref.Address != "A1:C3" {
		t.Errorf("wrong ref: %+v", ref)
	}
}

func TestParseRegionKeyInvalid(t *testing.T) {
	for _, key := range []string{"", "A1", "!A1", "Sheet1!"} {
		if _, err := ParseRegionKey(key); err == nil {
			t.Errorf("expected error for %q", key)
		}
	}
}

func TestGridRectangular(t *testing.T) {
	ok := Grid{{1, 2}, {3, 4}}
	if !ok.Rectangular() {
		t.Error("should be rectangular")
	}
	bad := Grid{{1, 2}, {3}}
	if bad.Rectangular() {
		t.Error("should not be rectangular")
	}
}

func TestGridClone(t *testing.T) {
	g := Grid{{1, "a"}, {nil, 2.5}}
	c := g.Clone()
	c[0][0] = 99
	if g[0][0] != 1 {
		t.Error("clone shares backing storage")
	}
}

func TestFormatSpecIsZero(t *testing.T) {
	var spec FormatSpec
	if !spec.IsZero() {
		t.Error("empty spec should be zero")
	}
	bold := true
	spec.Font.Bold = &bold
	if spec.IsZero() {
		t.Error("spec with font field should not be zero")
	}
}
