package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is a zero-based rectangular region: the cell at (Row, Col) plus
// Rows x Cols extent.
type Rect struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

// Address returns the A1-style address of the rectangle.
// Single cells render without a colon.
func (r Rect) Address() string {
	start := cellName(r.Row, r.Col)
	if r.Rows == 1 && r.Cols == 1 {
		return start
	}
	return start + ":" + cellName(r.Row+r.Rows-1, r.Col+r.Cols-1)
}

// Contains reports whether the rectangle contains the zero-based cell.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Row && row < r.Row+r.Rows && col >= r.Col && col < r.Col+r.Cols
}

// ParseAddress parses an A1-style address ("B2" or "B2:D10") into a Rect.
// Absolute markers ($) are tolerated and ignored.
func ParseAddress(address string) (Rect, error) {
	addr := strings.ReplaceAll(strings.TrimSpace(address), "$", "")
	if addr == "" {
		return Rect{}, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	start, end, found := strings.Cut(addr, ":")
	r1, c1, err := parseCell(start)
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if !found {
		return Rect{Row: r1, Col: c1, Rows: 1, Cols: 1}, nil
	}

	r2, c2, err := parseCell(end)
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	return Rect{Row: r1, Col: c1, Rows: r2 - r1 + 1, Cols: c2 - c1 + 1}, nil
}

// ColumnName converts a zero-based column index to its letter form
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

// ColumnIndex converts a column letter form to its zero-based index.
func ColumnIndex(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidAddress)
	}
	col := 0
	for _, ch := range strings.ToUpper(name) {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// cellName renders a zero-based (row, col) as an A1 cell reference.
func cellName(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// parseCell parses a single A1 cell reference into zero-based (row, col).
func parseCell(cell string) (row, col int, err error) {
	i := 0
	for i < len(cell) && (cell[i] >= 'A' && cell[i] <= 'Z' || cell[i] >= 'a' && cell[i] <= 'z') {
		i++
	}
	if i == 0 || i == len(cell) {
		return 0, 0, fmt.Errorf("cell %q", cell)
	}
	col, err = ColumnIndex(cell[:i])
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(cell[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("cell %q", cell)
	}
	return n - 1, col, nil
}
