package backend

import "context"

// Connection is the entry point to a document backend.
type Connection interface {
	// RunTransaction opens a batch scope, runs fn with a request builder,
	// and closes the scope on every exit path. When fn returns nil a
	// final Sync is performed before RunTransaction returns; when fn
	// returns an error the remaining scheduled requests are discarded.
	// Returns ErrUnavailable when the backend cannot be reached.
	RunTransaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Transaction is the request-builder scope passed to RunTransaction.
// Requests issued through it are not guaranteed observable until Sync
// returns nil.
type Transaction interface {
	// Sheet resolves a worksheet by name. An empty name resolves to the
	// sheet that is active at call time.
	Sheet(name string) (Sheet, error)

	// AddSheet schedules creation of a worksheet. A position < 0 appends
	// at the end. The created sheet becomes active when activate is true.
	AddSheet(name string, position int, activate bool) (Sheet, error)

	// Sync flushes every scheduled request in order. Loaded properties
	// and backend-assigned names are readable only after Sync returns
	// nil. Sync honors ctx cancellation.
	Sync(ctx context.Context) error
}

// Sheet is a worksheet handle scoped to one transaction.
type Sheet interface {
	// Name returns the worksheet name the handle was resolved with.
	Name() string

	// Activate schedules making this the active sheet.
	Activate()

	// Range resolves an A1-style address (no sheet prefix) on the sheet.
	Range(address string) (Range, error)

	// RangeByIndex resolves a zero-based rectangular region.
	RangeByIndex(rowOffset, colOffset, rowCount, colCount int) (Range, error)

	// RowStrip returns a whole-row strip for structural edits.
	RowStrip(start, count int) (Range, error)

	// ColumnStrip returns a whole-column strip for structural edits.
	ColumnStrip(start, count int) (Range, error)

	// AddTable schedules converting a region into a structured table.
	AddTable(spec TableSpec) (Created, error)

	// AddChart schedules creating a chart from a source region.
	AddChart(spec ChartSpec) (Created, error)
}

// Property identifies a loadable range property.
type Property uint8

const (
	// PropValues loads the cell values grid.
	PropValues Property = iota
	// PropFormulas loads the formulas grid.
	PropFormulas
	// PropNumberFormats loads the number format grid.
	PropNumberFormats
	// PropFormat loads the font/fill subset.
	PropFormat
)

// Range is a rectangular region handle scoped to one transaction.
//
// Reads are two-phase: Load schedules them, Sync makes them visible, the
// getters return the loaded data. Writes are scheduled immediately and
// applied at Sync; write failures surface as Sync errors.
type Range interface {
	// Address returns the A1 address of the range, without sheet prefix.
	Address() string

	// Load schedules reads of the given properties for the next Sync.
	Load(props ...Property)

	// Values returns the loaded values grid, or ErrNotLoaded.
	Values() (Grid, error)

	// Formulas returns the loaded formulas grid, or ErrNotLoaded.
	// Cells without a formula are empty strings.
	Formulas() ([][]string, error)

	// NumberFormats returns the loaded number format grid, or ErrNotLoaded.
	NumberFormats() ([][]string, error)

	// Format returns the loaded font/fill subset, or ErrNotLoaded.
	Format() (FormatSpec, error)

	// SetValues schedules writing a values grid of the range's shape.
	SetValues(values Grid)

	// SetFormulas schedules writing a formulas grid of the range's shape.
	// Empty strings clear the formula and keep the cell value.
	SetFormulas(formulas [][]string)

	// SetNumberFormats schedules writing a number format grid.
	SetNumberFormats(formats [][]string)

	// ApplyFormat schedules a partial format application; only fields
	// present in the spec are touched on the target.
	ApplyFormat(spec FormatSpec)

	// Insert schedules inserting this strip, shifting existing cells.
	Insert(shift Shift)

	// Delete schedules deleting this strip, shifting remaining cells.
	Delete(shift Shift)
}

// Created reports the outcome of a scheduled create request (sheet, table,
// chart). The backend may assign a name different from the requested one.
type Created interface {
	// Name returns the backend-assigned name, or ErrNotLoaded before a
	// successful Sync.
	Name() (string, error)
}

// SelectionListener receives selection-change notifications. The newly
// selected address is in "Sheet!A1" form. Context display only; not part
// of the execution/undo contract.
type SelectionListener func(address string)

// Notifier is implemented by backends that emit selection-change events.
type Notifier interface {
	// OnSelectionChanged registers a listener and returns an
	// unsubscribe function.
	OnSelectionChanged(fn SelectionListener) (unsubscribe func())
}
