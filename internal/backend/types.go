package backend

// Grid is rectangular, row-major cell value data. Empty cells are nil.
type Grid [][]any

// Dims returns the row and column counts of the grid.
func (g Grid) Dims() (rows, cols int) {
	rows = len(g)
	if rows > 0 {
		cols = len(g[0])
	}
	return rows, cols
}

// Rectangular reports whether every row has the same length.
func (g Grid) Rectangular() bool {
	if len(g) == 0 {
		return true
	}
	cols := len(g[0])
	for _, row := range g[1:] {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]any(nil), row...)
	}
	return out
}

// CloneStringGrid returns a deep copy of a string grid (formulas, number
// formats).
func CloneStringGrid(g [][]string) [][]string {
	if g == nil {
		return nil
	}
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Shift is the direction existing cells move during a structural edit.
type Shift uint8

const (
	// ShiftDown moves existing cells down (row insert).
	ShiftDown Shift = iota
	// ShiftRight moves existing cells right (column insert).
	ShiftRight
	// ShiftUp moves remaining cells up (row delete).
	ShiftUp
	// ShiftLeft moves remaining cells left (column delete).
	ShiftLeft
)

// String returns the shift direction name.
func (s Shift) String() string {
	switch s {
	case ShiftDown:
		return "down"
	case ShiftRight:
		return "right"
	case ShiftUp:
		return "up"
	case ShiftLeft:
		return "left"
	default:
		return "unknown"
	}
}

// FontSpec is the font subset the engine reads and writes. Nil fields are
// "not specified": left untouched on apply, absent from a capture.
type FontSpec struct {
	Bold   *bool
	Italic *bool
	Size   *float64
	Name   *string
	Color  *string
}

// IsZero reports whether no font field is specified.
func (f FontSpec) IsZero() bool {
	return f.Bold == nil && f.Italic == nil && f.Size == nil && f.Name == nil && f.Color == nil
}

// BorderSpec describes one border side.
type BorderSpec struct {
	Style string
	Color string
}

// FormatSpec is a partial formatting description. Nil fields are left
// untouched on apply; only fields present in the spec are written.
type FormatSpec struct {
	NumberFormat *string
	Font         FontSpec
	FillColor    *string
	BorderTop    *BorderSpec
	BorderBottom *BorderSpec
	BorderLeft   *BorderSpec
	BorderRight  *BorderSpec
}

// IsZero reports whether the spec specifies nothing.
func (f FormatSpec) IsZero() bool {
	return f.NumberFormat == nil && f.Font.IsZero() && f.FillColor == nil &&
		f.BorderTop == nil && f.BorderBottom == nil && f.BorderLeft == nil && f.BorderRight == nil
}

// TableSpec describes a structured table creation request.
type TableSpec struct {
	// Address is the region to convert, without sheet prefix.
	Address string
	// Name is the requested table name. The backend may assign a
	// different one; read the result from Created.Name after Sync.
	Name string
	// HasHeaders marks the first row as a header row.
	HasHeaders bool
	// Style is an optional table style name.
	Style string
}

// DefaultChartType is used when a chart request does not name a type.
const DefaultChartType = "ColumnClustered"

// ChartGeometry positions and sizes a chart in points.
type ChartGeometry struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// ChartSpec describes a chart creation request.
type ChartSpec struct {
	// SourceAddress is the data region, without sheet prefix.
	SourceAddress string
	// ChartType is the chart kind; DefaultChartType when empty.
	ChartType string
	// Name is the requested chart name; the backend may assign another.
	Name string
	// Geometry optionally positions the chart.
	Geometry *ChartGeometry
}
