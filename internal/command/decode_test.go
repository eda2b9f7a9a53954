package command

import (
	"errors"
	"testing"

	"github.com/dshills/gridstorm/internal/backend"
)

func TestDecodeSetValue(t *testing.T) {
	data := []byte(`{
		"type": "setValue",
		"params": {"range": "Sheet1!A1:B1", "values": [[10, "x"]]},
		"affectedRanges": [{"sheet": "Sheet1", "address": "A1:B1"}],
		"description": "Fill totals"
	}`)
	cmd, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p, ok := cmd.Params.(SetValue)
	if !ok {
		t.Fatalf("wrong params type: %T", cmd.Params)
	}
	if p.Target.Sheet != "Sheet1" || p.Target.Address != "A1:B1" {
		t.Errorf("wrong target: %+v", p.Target)
	}
	if p.Values[0][0] != float64(10) || p.Values[0][1] != "x" {
		t.Errorf("wrong values: %v", p.Values)
	}
	if len(cmd.AffectedRanges) != 1 || cmd.AffectedRanges[0].Key() != "Sheet1!A1:B1" {
		t.Errorf("wrong affected ranges: %v", cmd.AffectedRanges)
	}
	if cmd.Description != "Fill totals" {
		t.Errorf("wrong description: %s", cmd.Description)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type": "mergeCells", "params": {}}`))
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"type": "setValue"`))
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestDecodeValidates(t *testing.T) {
	// Affected range without a sheet must be rejected at the boundary.
	data := []byte(`{
		"type": "setValue",
		"params": {"range": "Sheet1!A1", "values": [[1]]},
		"affectedRanges": [{"address": "A1"}]
	}`)
	if _, err := Decode(data); !errors.Is(err, backend.ErrMissingSheet) {
		t.Errorf("expected ErrMissingSheet, got %v", err)
	}
}

func TestDecodeSetFormatPartial(t *testing.T) {
	data := []byte(`{
		"type": "setFormat",
		"params": {
			"range": "Sheet1!A1:C3",
			"format": {
				"font": {"bold": true},
				"fillColor": "#FFEE00",
				"borders": {"top": {"style": "thin", "color": "#000000"}}
			}
		}
	}`)
	cmd, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := cmd.Params.(SetFormat)
	if p.Format.Font.Bold == nil || !*p.Format.Font.Bold {
		t.Error("bold not decoded")
	}
	if p.Format.Font.Italic != nil {
		t.Error("absent italic should stay nil")
	}
	if p.Format.NumberFormat != nil {
		t.Error("absent numberFormat should stay nil")
	}
	if p.Format.BorderTop == nil || p.Format.BorderTop.Style != "thin" {
		t.Error("border not decoded")
	}
	if p.Format.BorderBottom != nil {
		t.Error("absent border should stay nil")
	}
}

func TestDecodeStructuralDefaults(t *testing.T) {
	cmd, err := Decode([]byte(`{"type": "insertRows", "params": {"sheet": "Data", "row": 4}}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := cmd.Params.(InsertRows)
	if p.Sheet != "Data" || p.Row != 4 || p.Count != 1 {
		t.Errorf("wrong params: %+v", p)
	}
}

func TestDecodeCreateSheetDefaults(t *testing.T) {
	cmd, err := Decode([]byte(`{"type": "createSheet", "params": {"name": "Report"}}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := cmd.Params.(CreateSheet)
	if p.Name != "Report" || p.Position != -1 {
		t.Errorf("wrong params: %+v", p)
	}
}

func TestDecodeCreateChart(t *testing.T) {
	data := []byte(`{
		"type": "createChart",
		"params": {
			"sheet": "Data",
			"sourceRange": "A1:B10",
			"position": {"top": 10, "left": 20, "width": 300, "height": 200}
		}
	}`)
	cmd, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := cmd.Params.(CreateChart)
	if p.ChartType != "" {
		t.Errorf("chart type should be empty (runner applies default), got %q", p.ChartType)
	}
	if p.Geometry == nil || p.Geometry.Width != 300 {
		t.Errorf("geometry not decoded: %+v", p.Geometry)
	}
}

func TestDecodeBatchRecursive(t *testing.T) {
	data := []byte(`{
		"type": "batchUpdate",
		"params": {"updates": [
			{"type": "setValue", "params": {"range": "Sheet1!A1", "values": [[1]]}},
			{"type": "createSheet", "params": {"name": "Next"}}
		]}
	}`)
	cmd, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := cmd.Params.(BatchUpdate)
	if len(p.Updates) != 2 {
		t.Fatalf("wrong batch size: %d", len(p.Updates))
	}
	if p.Updates[0].Kind() != KindSetValue || p.Updates[1].Kind() != KindCreateSheet {
		t.Errorf("wrong sub-command kinds")
	}
}

func TestDecodeAllArray(t *testing.T) {
	data := []byte(`[
		{"type": "setValue", "params": {"range": "Sheet1!A1", "values": [[1]]}},
		{"type": "insertRows", "params": {"row": 0}}
	]`)
	cmds, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("wrong count: %d", len(cmds))
	}
}
