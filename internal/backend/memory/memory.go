package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/gridstorm/internal/backend"
)

// cellKey addresses one cell within a sheet.
type cellKey struct {
	row int
	col int
}

// fontState is the resolved font of a cell.
type fontState struct {
	bold   bool
	italic bool
	size   float64
	name   string
	color  string
}

// defaultFont returns the workbook default font.
func defaultFont() fontState {
	return fontState{size: 11, name: "Calibri", color: "#000000"}
}

// cellState is the stored state of one cell. Zero-value fields fall back
// to workbook defaults when read.
type cellState struct {
	value        any
	formula      string
	numberFormat string
	font         fontState
	hasFont      bool
	fill         string
	borders      map[string]backend.BorderSpec
}

// sheetState is one worksheet.
type sheetState struct {
	name  string
	cells map[cellKey]*cellState
}

func newSheetState(name string) *sheetState {
	return &sheetState{name: name, cells: make(map[cellKey]*cellState)}
}

// cell returns the cell at (row, col), creating it on demand.
func (s *sheetState) cell(row, col int) *cellState {
	key := cellKey{row: row, col: col}
	c, ok := s.cells[key]
	if !ok {
		c = &cellState{font: defaultFont(), numberFormat: "General"}
		s.cells[key] = c
	}
	return c
}

// peek returns the cell at (row, col) or nil.
func (s *sheetState) peek(row, col int) *cellState {
	return s.cells[cellKey{row: row, col: col}]
}

// Workbook is an in-memory document backend.
type Workbook struct {
	mu sync.Mutex

	order  []string
	sheets map[string]*sheetState
	active string

	tableNames map[string]bool
	chartNames map[string]bool
	nextTable  int
	nextChart  int
	nextSheet  int

	unavailable bool

	selection    string
	listeners    map[int]backend.SelectionListener
	nextListener int
}

// NewWorkbook creates a workbook containing the given sheets. With no
// names, a single "Sheet1" is created. The first sheet is active.
func NewWorkbook(sheetNames ...string) *Workbook {
	if len(sheetNames) == 0 {
		sheetNames = []string{"Sheet1"}
	}
	w := &Workbook{
		sheets:     make(map[string]*sheetState),
		tableNames: make(map[string]bool),
		chartNames: make(map[string]bool),
		listeners:  make(map[int]backend.SelectionListener),
		nextSheet:  len(sheetNames),
	}
	for _, name := range sheetNames {
		w.order = append(w.order, name)
		w.sheets[name] = newSheetState(name)
	}
	w.active = sheetNames[0]
	return w
}

// SetUnavailable toggles simulated backend unreachability. While set,
// RunTransaction and Sync fail with backend.ErrUnavailable.
func (w *Workbook) SetUnavailable(unavailable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unavailable = unavailable
}

// ActiveSheet returns the name of the active sheet.
func (w *Workbook) ActiveSheet() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// RunTransaction implements backend.Connection.
func (w *Workbook) RunTransaction(ctx context.Context, fn func(tx backend.Transaction) error) error {
	w.mu.Lock()
	if w.unavailable {
		w.mu.Unlock()
		return backend.ErrUnavailable
	}
	w.mu.Unlock()

	tx := &transaction{wb: w, pendingSheets: make(map[string]bool)}
	if err := fn(tx); err != nil {
		tx.ops = nil
		return err
	}
	return tx.Sync(ctx)
}

// Select sets the current selection and notifies listeners. The address is
// in "Sheet!A1" form. Context display only.
func (w *Workbook) Select(sheet, address string) error {
	ref := backend.RegionRef{Sheet: sheet, Address: address}
	if err := ref.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if _, ok := w.sheets[sheet]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %q", backend.ErrNoSuchSheet, sheet)
	}
	w.selection = ref.Key()
	fns := make([]backend.SelectionListener, 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(ref.Key())
	}
	return nil
}

// OnSelectionChanged implements backend.Notifier.
func (w *Workbook) OnSelectionChanged(fn backend.SelectionListener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextListener
	w.nextListener++
	w.listeners[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

// sheet returns the named sheet. Caller holds w.mu.
func (w *Workbook) sheetLocked(name string) (*sheetState, error) {
	s, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", backend.ErrNoSuchSheet, name)
	}
	return s, nil
}

// assignTableName reserves a unique table name. Caller holds w.mu.
func (w *Workbook) assignTableName(requested string) string {
	if requested != "" && !w.tableNames[requested] {
		w.tableNames[requested] = true
		return requested
	}
	for {
		w.nextTable++
		name := fmt.Sprintf("Table%d", w.nextTable)
		if !w.tableNames[name] {
			w.tableNames[name] = true
			return name
		}
	}
}

// assignChartName reserves a unique chart name. Caller holds w.mu.
func (w *Workbook) assignChartName(requested string) string {
	if requested != "" && !w.chartNames[requested] {
		w.chartNames[requested] = true
		return requested
	}
	for {
		w.nextChart++
		name := fmt.Sprintf("Chart%d", w.nextChart)
		if !w.chartNames[name] {
			w.chartNames[name] = true
			return name
		}
	}
}

// insertRows shifts rows at start down by count. Caller holds w.mu.
func (s *sheetState) insertRows(start, count int) {
	moved := make(map[cellKey]*cellState)
	for key, c := range s.cells {
		if key.row >= start {
			delete(s.cells, key)
			moved[cellKey{row: key.row + count, col: key.col}] = c
		}
	}
	for key, c := range moved {
		s.cells[key] = c
	}
}

// deleteRows removes count rows at start, shifting the rest up.
func (s *sheetState) deleteRows(start, count int) {
	moved := make(map[cellKey]*cellState)
	for key, c := range s.cells {
		if key.row >= start && key.row < start+count {
			delete(s.cells, key)
		} else if key.row >= start+count {
			delete(s.cells, key)
			moved[cellKey{row: key.row - count, col: key.col}] = c
		}
	}
	for key, c := range moved {
		s.cells[key] = c
	}
}

// insertColumns shifts columns at start right by count.
func (s *sheetState) insertColumns(start, count int) {
	moved := make(map[cellKey]*cellState)
	for key, c := range s.cells {
		if key.col >= start {
			delete(s.cells, key)
			moved[cellKey{row: key.row, col: key.col + count}] = c
		}
	}
	for key, c := range moved {
		s.cells[key] = c
	}
}

// deleteColumns removes count columns at start, shifting the rest left.
func (s *sheetState) deleteColumns(start, count int) {
	moved := make(map[cellKey]*cellState)
	for key, c := range s.cells {
		if key.col >= start && key.col < start+count {
			delete(s.cells, key)
		} else if key.col >= start+count {
			delete(s.cells, key)
			moved[cellKey{row: key.row, col: key.col - count}] = c
		}
	}
	for key, c := range moved {
		s.cells[key] = c
	}
}
