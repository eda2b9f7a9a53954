package command

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/gridstorm/internal/backend"
)

// Decode parses one command document submitted by the chat/AI layer.
//
// Expected shape:
//
//	{
//	  "type": "setValue",
//	  "params": {"range": "Sheet1!A1:B2", "values": [[1, 2], [3, 4]]},
//	  "affectedRanges": [{"sheet": "Sheet1", "address": "A1:B2"}],
//	  "description": "Fill totals"
//	}
//
// The decoded command is validated; an unrecognized type yields
// ErrUnknownOperation.
func Decode(data []byte) (Command, error) {
	if !gjson.ValidBytes(data) {
		return Command{}, fmt.Errorf("%w: malformed JSON", ErrInvalidCommand)
	}
	cmd, err := decodeCommand(gjson.ParseBytes(data))
	if err != nil {
		return Command{}, err
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// DecodeAll parses a single command document or an array of them.
func DecodeAll(data []byte) ([]Command, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidCommand)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		cmd, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return []Command{cmd}, nil
	}

	var out []Command
	for i, item := range doc.Array() {
		cmd, err := decodeCommand(item)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

// decodeCommand builds a Command from a parsed document without validating.
func decodeCommand(doc gjson.Result) (Command, error) {
	kind, err := ParseKind(doc.Get("type").String())
	if err != nil {
		return Command{}, err
	}

	params, err := decodeParams(kind, doc.Get("params"))
	if err != nil {
		return Command{}, err
	}

	cmd := Command{
		Params:      params,
		Description: doc.Get("description").String(),
	}
	for _, r := range doc.Get("affectedRanges").Array() {
		cmd.AffectedRanges = append(cmd.AffectedRanges, backend.RegionRef{
			Sheet:   r.Get("sheet").String(),
			Address: r.Get("address").String(),
		})
	}
	return cmd, nil
}

// decodeParams builds the typed payload for one operation kind.
func decodeParams(kind Kind, p gjson.Result) (Params, error) {
	switch kind {
	case KindSetValue:
		return SetValue{
			Target: ParseTarget(p.Get("range").String()),
			Values: decodeGrid(p.Get("values")),
		}, nil

	case KindSetFormula:
		return SetFormula{
			Target:   ParseTarget(p.Get("range").String()),
			Formulas: decodeStringGrid(p.Get("formulas")),
		}, nil

	case KindSetFormat:
		return SetFormat{
			Target: ParseTarget(p.Get("range").String()),
			Format: decodeFormat(p.Get("format")),
		}, nil

	case KindInsertRows:
		return InsertRows{
			Sheet: p.Get("sheet").String(),
			Row:   int(p.Get("row").Int()),
			Count: countOrOne(p),
		}, nil

	case KindInsertColumns:
		return InsertColumns{
			Sheet:  p.Get("sheet").String(),
			Column: int(p.Get("column").Int()),
			Count:  countOrOne(p),
		}, nil

	case KindDeleteRows:
		return DeleteRows{
			Sheet: p.Get("sheet").String(),
			Row:   int(p.Get("row").Int()),
			Count: countOrOne(p),
		}, nil

	case KindDeleteColumns:
		return DeleteColumns{
			Sheet:  p.Get("sheet").String(),
			Column: int(p.Get("column").Int()),
			Count:  countOrOne(p),
		}, nil

	case KindCreateSheet:
		position := -1
		if pos := p.Get("position"); pos.Exists() {
			position = int(pos.Int())
		}
		return CreateSheet{
			Name:     p.Get("name").String(),
			Position: position,
		}, nil

	case KindCreateTable:
		hasHeaders := true
		if h := p.Get("hasHeaders"); h.Exists() {
			hasHeaders = h.Bool()
		}
		return CreateTable{
			Target:     ParseTarget(p.Get("range").String()),
			Name:       p.Get("name").String(),
			Style:      p.Get("style").String(),
			HasHeaders: hasHeaders,
		}, nil

	case KindCreateChart:
		chart := CreateChart{
			Sheet:     p.Get("sheet").String(),
			Source:    p.Get("sourceRange").String(),
			ChartType: p.Get("chartType").String(),
			Name:      p.Get("name").String(),
		}
		if pos := p.Get("position"); pos.IsObject() {
			chart.Geometry = &backend.ChartGeometry{
				Top:    pos.Get("top").Float(),
				Left:   pos.Get("left").Float(),
				Width:  pos.Get("width").Float(),
				Height: pos.Get("height").Float(),
			}
		}
		return chart, nil

	case KindBatchUpdate:
		var updates []Command
		for i, item := range p.Get("updates").Array() {
			sub, err := decodeCommand(item)
			if err != nil {
				return nil, fmt.Errorf("batch step %d: %w", i, err)
			}
			updates = append(updates, sub)
		}
		return BatchUpdate{Updates: updates}, nil

	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownOperation, kind)
	}
}

// decodeGrid converts a JSON array-of-arrays into a values grid. Numbers
// decode as float64, booleans as bool, null as nil.
func decodeGrid(res gjson.Result) backend.Grid {
	var grid backend.Grid
	for _, row := range res.Array() {
		var cells []any
		for _, cell := range row.Array() {
			cells = append(cells, cellValue(cell))
		}
		grid = append(grid, cells)
	}
	return grid
}

// decodeStringGrid converts a JSON array-of-arrays into a string grid.
func decodeStringGrid(res gjson.Result) [][]string {
	var grid [][]string
	for _, row := range res.Array() {
		var cells []string
		for _, cell := range row.Array() {
			cells = append(cells, cell.String())
		}
		grid = append(grid, cells)
	}
	return grid
}

// cellValue converts one JSON scalar into a cell value.
func cellValue(res gjson.Result) any {
	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return res.Float()
	default:
		return res.String()
	}
}

// decodeFormat builds a partial format spec; absent JSON fields stay nil.
func decodeFormat(res gjson.Result) backend.FormatSpec {
	var spec backend.FormatSpec
	if v := res.Get("numberFormat"); v.Exists() {
		s := v.String()
		spec.NumberFormat = &s
	}
	if font := res.Get("font"); font.IsObject() {
		if v := font.Get("bold"); v.Exists() {
			b := v.Bool()
			spec.Font.Bold = &b
		}
		if v := font.Get("italic"); v.Exists() {
			b := v.Bool()
			spec.Font.Italic = &b
		}
		if v := font.Get("size"); v.Exists() {
			f := v.Float()
			spec.Font.Size = &f
		}
		if v := font.Get("name"); v.Exists() {
			s := v.String()
			spec.Font.Name = &s
		}
		if v := font.Get("color"); v.Exists() {
			s := v.String()
			spec.Font.Color = &s
		}
	}
	if v := res.Get("fillColor"); v.Exists() {
		s := v.String()
		spec.FillColor = &s
	}
	if borders := res.Get("borders"); borders.IsObject() {
		spec.BorderTop = decodeBorder(borders.Get("top"))
		spec.BorderBottom = decodeBorder(borders.Get("bottom"))
		spec.BorderLeft = decodeBorder(borders.Get("left"))
		spec.BorderRight = decodeBorder(borders.Get("right"))
	}
	return spec
}

// decodeBorder builds one border side, or nil when absent.
func decodeBorder(res gjson.Result) *backend.BorderSpec {
	if !res.IsObject() {
		return nil
	}
	return &backend.BorderSpec{
		Style: res.Get("style").String(),
		Color: res.Get("color").String(),
	}
}

// countOrOne reads a count field defaulting to 1.
func countOrOne(p gjson.Result) int {
	if c := p.Get("count"); c.Exists() {
		return int(c.Int())
	}
	return 1
}
