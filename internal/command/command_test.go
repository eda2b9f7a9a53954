package command

import (
	"errors"
	"testing"

	"github.com/dshills/gridstorm/internal/backend"
)

func TestParseKindRoundTrip(t *testing.T) {
	names := []string{
		"setValue", "setFormula", "setFormat",
		"insertRows", "insertColumns", "deleteRows", "deleteColumns",
		"createSheet", "createTable", "createChart", "batchUpdate",
	}
	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", name, err)
		}
		if kind.String() != name {
			t.Errorf("round trip %q -> %q", name, kind.String())
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("mergeCells"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestParseTarget(t *testing.T) {
	tgt := ParseTarget("Summary!B2:D10")
	if tgt.Sheet != "Summary" || tgt.Address != "B2:D10" {
		t.Errorf("wrong target: %+v", tgt)
	}
	bare := ParseTarget("A1")
	if bare.Sheet != "" || bare.Address != "A1" {
		t.Errorf("wrong bare target: %+v", bare)
	}
}

func TestCommandValidateNilParams(t *testing.T) {
	cmd := Command{}
	if err := cmd.Validate(); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestCommandValidateAffectedRangeNeedsSheet(t *testing.T) {
	cmd := Command{
		Params: SetValue{
			Target: Target{Sheet: "Sheet1", Address: "A1"},
			Values: backend.Grid{{1}},
		},
		AffectedRanges: []backend.RegionRef{{Address: "A1"}},
	}
	if err := cmd.Validate(); !errors.Is(err, backend.ErrMissingSheet) {
		t.Errorf("expected ErrMissingSheet, got %v", err)
	}
}

func TestSetValueValidateRaggedGrid(t *testing.T) {
	p := SetValue{
		Target: Target{Address: "A1:B2"},
		Values: backend.Grid{{1, 2}, {3}},
	}
	if err := p.Validate(); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestSetFormatValidateEmptyFormat(t *testing.T) {
	p := SetFormat{Target: Target{Address: "A1"}}
	if err := p.Validate(); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestStripValidate(t *testing.T) {
	if err := (InsertRows{Row: -1, Count: 1}).Validate(); err == nil {
		t.Error("negative row should fail")
	}
	if err := (DeleteColumns{Column: 0, Count: 0}).Validate(); err == nil {
		t.Error("zero count should fail")
	}
	if err := (InsertColumns{Column: 2, Count: 3}).Validate(); err != nil {
		t.Errorf("valid strip failed: %v", err)
	}
}

func TestBatchValidate(t *testing.T) {
	if err := (BatchUpdate{}).Validate(); err == nil {
		t.Error("empty batch should fail")
	}
	batch := BatchUpdate{Updates: []Command{
		{Params: SetValue{Target: Target{Address: "A1"}, Values: backend.Grid{{1}}}},
		{Params: SetValue{Target: Target{Address: "bad"}, Values: backend.Grid{{1}}}},
	}}
	if err := batch.Validate(); err == nil {
		t.Error("batch with invalid step should fail")
	}
}

func TestDescribe(t *testing.T) {
	cmd := Command{Params: SetValue{Target: Target{Sheet: "Sheet1", Address: "A1"}, Values: backend.Grid{{1}}}}
	if cmd.Describe() != "Set values on Sheet1!A1" {
		t.Errorf("wrong description: %s", cmd.Describe())
	}
	cmd.Description = "Fill totals"
	if cmd.Describe() != "Fill totals" {
		t.Errorf("caller description should win: %s", cmd.Describe())
	}
}
