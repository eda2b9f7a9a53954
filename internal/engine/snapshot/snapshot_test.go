package snapshot

import (
	"context"
	"testing"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/backend/memory"
)

func seed(t *testing.T, wb *memory.Workbook) {
	t.Helper()
	err := wb.RunTransaction(context.Background(), func(tx backend.Transaction) error {
		sh, err := tx.Sheet("Sheet1")
		if err != nil {
			return err
		}
		rng, err := sh.Range("A1:B2")
		if err != nil {
			return err
		}
		rng.SetValues(backend.Grid{{1, 2}, {3, 4}})
		rng.SetNumberFormats([][]string{{"0.00", "General"}, {"General", "General"}})
		bold := true
		rng.ApplyFormat(backend.FormatSpec{Font: backend.FontSpec{Bold: &bold}})
		f, err := sh.Range("C1")
		if err != nil {
			return err
		}
		f.SetFormulas([][]string{{"=A1+B1"}})
		return nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestCaptureKeysAndContents(t *testing.T) {
	wb := memory.NewWorkbook()
	seed(t, wb)
	s := New(wb, nil)

	snap := s.Capture(context.Background(), []backend.RegionRef{
		{Sheet: "Sheet1", Address: "A1:B2"},
		{Sheet: "Sheet1", Address: "C1"},
	})
	if snap == nil {
		t.Fatal("capture returned nil")
	}
	if len(snap) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(snap))
	}

	state, ok := snap["Sheet1!A1:B2"]
	if !ok {
		t.Fatal("missing region key Sheet1!A1:B2")
	}
	if state.Values[0][0] != 1 || state.Values[1][1] != 4 {
		t.Errorf("wrong values: %v", state.Values)
	}
	if state.NumberFormats[0][0] != "0.00" {
		t.Errorf("wrong number format: %v", state.NumberFormats)
	}
	if state.Font.Bold == nil || !*state.Font.Bold {
		t.Error("bold not captured")
	}

	formula, ok := snap["Sheet1!C1"]
	if !ok {
		t.Fatal("missing region key Sheet1!C1")
	}
	if formula.Formulas[0][0] != "=A1+B1" {
		t.Errorf("wrong formula: %v", formula.Formulas)
	}
}

func TestCaptureUnavailableReturnsNil(t *testing.T) {
	wb := memory.NewWorkbook()
	wb.SetUnavailable(true)
	s := New(wb, nil)

	snap := s.Capture(context.Background(), []backend.RegionRef{{Sheet: "Sheet1", Address: "A1"}})
	if snap != nil {
		t.Errorf("expected nil snapshot, got %v", snap)
	}
}

func TestCaptureRequiresExplicitSheet(t *testing.T) {
	wb := memory.NewWorkbook()
	s := New(wb, nil)
	snap := s.Capture(context.Background(), []backend.RegionRef{{Address: "A1"}})
	if snap != nil {
		t.Errorf("capture of sheetless region should fail, got %v", snap)
	}
}

func TestCaptureEmptyRegions(t *testing.T) {
	wb := memory.NewWorkbook()
	s := New(wb, nil)
	snap := s.Capture(context.Background(), nil)
	if snap == nil || len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	wb := memory.NewWorkbook()
	seed(t, wb)
	s := New(wb, nil)
	regions := []backend.RegionRef{{Sheet: "Sheet1", Address: "A1:B2"}}

	snap := s.Capture(context.Background(), regions)
	if snap == nil {
		t.Fatal("capture failed")
	}

	// Overwrite the region.
	err := wb.RunTransaction(context.Background(), func(tx backend.Transaction) error {
		sh, _ := tx.Sheet("Sheet1")
		rng, _ := sh.Range("A1:B2")
		rng.SetValues(backend.Grid{{99, 99}, {99, 99}})
		fill := "#FF0000"
		rng.ApplyFormat(backend.FormatSpec{FillColor: &fill})
		return nil
	})
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	if err := s.Restore(context.Background(), snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	after := s.Capture(context.Background(), regions)
	state := after["Sheet1!A1:B2"]
	if state.Values[0][0] != 1 || state.Values[1][1] != 4 {
		t.Errorf("values not restored: %v", state.Values)
	}
	if state.FillColor == nil || *state.FillColor != "" {
		t.Errorf("fill not restored to empty, got %v", state.FillColor)
	}
	if state.Font.Bold == nil || !*state.Font.Bold {
		t.Error("bold lost on restore")
	}
}

func TestRestoreUnavailable(t *testing.T) {
	wb := memory.NewWorkbook()
	seed(t, wb)
	s := New(wb, nil)
	snap := s.Capture(context.Background(), []backend.RegionRef{{Sheet: "Sheet1", Address: "A1"}})

	wb.SetUnavailable(true)
	if err := s.Restore(context.Background(), snap); err == nil {
		t.Error("expected restore failure while unavailable")
	}
}

func TestRestoreEmptySnapshot(t *testing.T) {
	wb := memory.NewWorkbook()
	s := New(wb, nil)
	if err := s.Restore(context.Background(), nil); err != nil {
		t.Errorf("empty restore should be a no-op, got %v", err)
	}
	if err := s.Restore(context.Background(), Snapshot{}); err != nil {
		t.Errorf("empty restore should be a no-op, got %v", err)
	}
}
