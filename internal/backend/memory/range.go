package memory

import (
	"fmt"

	"github.com/dshills/gridstorm/internal/backend"
)

// stripKind marks whole-row / whole-column strips used by structural edits.
type stripKind uint8

const (
	stripNone stripKind = iota
	stripRows
	stripCols
)

// rangeHandle implements backend.Range.
type rangeHandle struct {
	tx    *transaction
	sheet string
	rect  backend.Rect
	strip stripKind

	// Loaded data, populated at Sync.
	values        backend.Grid
	formulas      [][]string
	numberFormats [][]string
	format        *backend.FormatSpec
}

// Address implements backend.Range.
func (r *rangeHandle) Address() string {
	switch r.strip {
	case stripRows:
		return fmt.Sprintf("%d:%d", r.rect.Row+1, r.rect.Row+r.rect.Rows)
	case stripCols:
		return backend.ColumnName(r.rect.Col) + ":" + backend.ColumnName(r.rect.Col+r.rect.Cols-1)
	default:
		return r.rect.Address()
	}
}

// sheetState resolves the handle's sheet. Caller holds the workbook lock.
func (r *rangeHandle) sheetState() (*sheetState, error) {
	return r.tx.wb.sheetLocked(r.sheet)
}

// Load implements backend.Range.
func (r *rangeHandle) Load(props ...backend.Property) {
	for _, prop := range props {
		p := prop
		r.tx.schedule(func() error {
			return r.load(p)
		})
	}
}

// load materializes one property. Runs with the workbook lock held.
func (r *rangeHandle) load(prop backend.Property) error {
	s, err := r.sheetState()
	if err != nil {
		return err
	}

	switch prop {
	case backend.PropValues:
		grid := make(backend.Grid, r.rect.Rows)
		for i := range grid {
			row := make([]any, r.rect.Cols)
			for j := range row {
				if c := s.peek(r.rect.Row+i, r.rect.Col+j); c != nil {
					row[j] = c.value
				}
			}
			grid[i] = row
		}
		r.values = grid

	case backend.PropFormulas:
		grid := make([][]string, r.rect.Rows)
		for i := range grid {
			row := make([]string, r.rect.Cols)
			for j := range row {
				if c := s.peek(r.rect.Row+i, r.rect.Col+j); c != nil {
					row[j] = c.formula
				}
			}
			grid[i] = row
		}
		r.formulas = grid

	case backend.PropNumberFormats:
		grid := make([][]string, r.rect.Rows)
		for i := range grid {
			row := make([]string, r.rect.Cols)
			for j := range row {
				row[j] = "General"
				if c := s.peek(r.rect.Row+i, r.rect.Col+j); c != nil && c.numberFormat != "" {
					row[j] = c.numberFormat
				}
			}
			grid[i] = row
		}
		r.numberFormats = grid

	case backend.PropFormat:
		// Formatting is reported for the range as a whole, read from
		// the top-left cell.
		font := defaultFont()
		fill := ""
		if c := s.peek(r.rect.Row, r.rect.Col); c != nil {
			font = c.font
			fill = c.fill
		}
		bold, italic := font.bold, font.italic
		size, name, color := font.size, font.name, font.color
		r.format = &backend.FormatSpec{
			Font: backend.FontSpec{
				Bold:   &bold,
				Italic: &italic,
				Size:   &size,
				Name:   &name,
				Color:  &color,
			},
			FillColor: &fill,
		}

	default:
		return fmt.Errorf("unknown range property %d", prop)
	}
	return nil
}

// Values implements backend.Range.
func (r *rangeHandle) Values() (backend.Grid, error) {
	if r.values == nil {
		return nil, backend.ErrNotLoaded
	}
	return r.values, nil
}

// Formulas implements backend.Range.
func (r *rangeHandle) Formulas() ([][]string, error) {
	if r.formulas == nil {
		return nil, backend.ErrNotLoaded
	}
	return r.formulas, nil
}

// NumberFormats implements backend.Range.
func (r *rangeHandle) NumberFormats() ([][]string, error) {
	if r.numberFormats == nil {
		return nil, backend.ErrNotLoaded
	}
	return r.numberFormats, nil
}

// Format implements backend.Range.
func (r *rangeHandle) Format() (backend.FormatSpec, error) {
	if r.format == nil {
		return backend.FormatSpec{}, backend.ErrNotLoaded
	}
	return *r.format, nil
}

// checkDims validates a grid shape against the range.
func (r *rangeHandle) checkDims(rows, cols int) error {
	if rows != r.rect.Rows || cols != r.rect.Cols {
		return fmt.Errorf("%w: got %dx%d, range %s is %dx%d",
			backend.ErrDimensionMismatch, rows, cols, r.Address(), r.rect.Rows, r.rect.Cols)
	}
	return nil
}

// SetValues implements backend.Range. Writing a literal value clears any
// formula on the cell.
func (r *rangeHandle) SetValues(values backend.Grid) {
	grid := values.Clone()
	r.tx.schedule(func() error {
		if !grid.Rectangular() {
			return fmt.Errorf("%w: ragged values grid", backend.ErrDimensionMismatch)
		}
		rows, cols := grid.Dims()
		if err := r.checkDims(rows, cols); err != nil {
			return err
		}
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				c := s.cell(r.rect.Row+i, r.rect.Col+j)
				c.value = grid[i][j]
				c.formula = ""
			}
		}
		return nil
	})
}

// SetFormulas implements backend.Range. Empty strings clear the formula
// and keep the cell value.
func (r *rangeHandle) SetFormulas(formulas [][]string) {
	grid := backend.CloneStringGrid(formulas)
	r.tx.schedule(func() error {
		if err := r.checkDims(len(grid), rowWidth(grid)); err != nil {
			return err
		}
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		for i, row := range grid {
			for j, formula := range row {
				c := s.cell(r.rect.Row+i, r.rect.Col+j)
				c.formula = formula
			}
		}
		return nil
	})
}

// SetNumberFormats implements backend.Range.
func (r *rangeHandle) SetNumberFormats(formats [][]string) {
	grid := backend.CloneStringGrid(formats)
	r.tx.schedule(func() error {
		if err := r.checkDims(len(grid), rowWidth(grid)); err != nil {
			return err
		}
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		for i, row := range grid {
			for j, format := range row {
				c := s.cell(r.rect.Row+i, r.rect.Col+j)
				c.numberFormat = format
			}
		}
		return nil
	})
}

// ApplyFormat implements backend.Range. Only fields present in the spec
// are written; each font field is assigned individually.
func (r *rangeHandle) ApplyFormat(spec backend.FormatSpec) {
	r.tx.schedule(func() error {
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		for i := 0; i < r.rect.Rows; i++ {
			for j := 0; j < r.rect.Cols; j++ {
				applyFormatToCell(s.cell(r.rect.Row+i, r.rect.Col+j), spec)
			}
		}
		return nil
	})
}

// applyFormatToCell assigns present spec fields onto a cell.
func applyFormatToCell(c *cellState, spec backend.FormatSpec) {
	if spec.NumberFormat != nil {
		c.numberFormat = *spec.NumberFormat
	}
	if spec.Font.Bold != nil {
		c.font.bold = *spec.Font.Bold
	}
	if spec.Font.Italic != nil {
		c.font.italic = *spec.Font.Italic
	}
	if spec.Font.Size != nil {
		c.font.size = *spec.Font.Size
	}
	if spec.Font.Name != nil {
		c.font.name = *spec.Font.Name
	}
	if spec.Font.Color != nil {
		c.font.color = *spec.Font.Color
	}
	if spec.FillColor != nil {
		c.fill = *spec.FillColor
	}
	for side, border := range map[string]*backend.BorderSpec{
		"top": spec.BorderTop, "bottom": spec.BorderBottom,
		"left": spec.BorderLeft, "right": spec.BorderRight,
	} {
		if border != nil {
			if c.borders == nil {
				c.borders = make(map[string]backend.BorderSpec)
			}
			c.borders[side] = *border
		}
	}
}

// Insert implements backend.Range. Structural inserts require a row or
// column strip with a shift direction consistent with the strip.
func (r *rangeHandle) Insert(shift backend.Shift) {
	r.tx.schedule(func() error {
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		switch {
		case r.strip == stripRows && shift == backend.ShiftDown:
			s.insertRows(r.rect.Row, r.rect.Rows)
		case r.strip == stripCols && shift == backend.ShiftRight:
			s.insertColumns(r.rect.Col, r.rect.Cols)
		default:
			return fmt.Errorf("insert on %s: unsupported strip/shift combination (%s)", r.Address(), shift)
		}
		return nil
	})
}

// Delete implements backend.Range.
func (r *rangeHandle) Delete(shift backend.Shift) {
	r.tx.schedule(func() error {
		s, err := r.sheetState()
		if err != nil {
			return err
		}
		switch {
		case r.strip == stripRows && shift == backend.ShiftUp:
			s.deleteRows(r.rect.Row, r.rect.Rows)
		case r.strip == stripCols && shift == backend.ShiftLeft:
			s.deleteColumns(r.rect.Col, r.rect.Cols)
		default:
			return fmt.Errorf("delete on %s: unsupported strip/shift combination (%s)", r.Address(), shift)
		}
		return nil
	})
}

// rowWidth returns the width of the first row of a string grid.
func rowWidth(grid [][]string) int {
	if len(grid) == 0 {
		return 0
	}
	return len(grid[0])
}
