package memory

import (
	"context"
	"fmt"

	"github.com/dshills/gridstorm/internal/backend"
)

// op is one scheduled request. Runs with the workbook lock held.
type op func() error

// transaction implements backend.Transaction over a Workbook.
type transaction struct {
	wb  *Workbook
	ops []op

	// pendingSheets tracks sheets scheduled by AddSheet so that handles
	// to them can be resolved before the creating Sync runs.
	pendingSheets map[string]bool
}

// schedule appends a request to the batch.
func (tx *transaction) schedule(fn op) {
	tx.ops = append(tx.ops, fn)
}

// Sheet implements backend.Transaction.
func (tx *transaction) Sheet(name string) (backend.Sheet, error) {
	tx.wb.mu.Lock()
	defer tx.wb.mu.Unlock()

	if name == "" {
		name = tx.wb.active
	}
	if _, ok := tx.wb.sheets[name]; !ok && !tx.pendingSheets[name] {
		return nil, fmt.Errorf("%w: %q", backend.ErrNoSuchSheet, name)
	}
	return &sheetHandle{tx: tx, name: name}, nil
}

// AddSheet implements backend.Transaction.
func (tx *transaction) AddSheet(name string, position int, activate bool) (backend.Sheet, error) {
	tx.wb.mu.Lock()
	if name == "" {
		for {
			tx.wb.nextSheet++
			candidate := fmt.Sprintf("Sheet%d", tx.wb.nextSheet)
			if _, ok := tx.wb.sheets[candidate]; !ok && !tx.pendingSheets[candidate] {
				name = candidate
				break
			}
		}
	} else if _, ok := tx.wb.sheets[name]; ok || tx.pendingSheets[name] {
		tx.wb.mu.Unlock()
		return nil, fmt.Errorf("sheet %q already exists", name)
	}
	tx.pendingSheets[name] = true
	tx.wb.mu.Unlock()

	tx.schedule(func() error {
		wb := tx.wb
		if _, ok := wb.sheets[name]; ok {
			return fmt.Errorf("sheet %q already exists", name)
		}
		wb.sheets[name] = newSheetState(name)
		if position < 0 || position > len(wb.order) {
			wb.order = append(wb.order, name)
		} else {
			wb.order = append(wb.order[:position], append([]string{name}, wb.order[position:]...)...)
		}
		if activate {
			wb.active = name
		}
		return nil
	})

	return &sheetHandle{tx: tx, name: name}, nil
}

// Sync implements backend.Transaction. Requests run in schedule order; the
// first failure stops the flush and leaves earlier requests applied.
func (tx *transaction) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.wb.mu.Lock()
	defer tx.wb.mu.Unlock()

	if tx.wb.unavailable {
		return backend.ErrUnavailable
	}

	ops := tx.ops
	tx.ops = nil
	for _, fn := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// createdHandle implements backend.Created. The assigned name becomes
// readable after the creating Sync runs.
type createdHandle struct {
	name   string
	synced bool
}

// Name implements backend.Created.
func (c *createdHandle) Name() (string, error) {
	if !c.synced {
		return "", backend.ErrNotLoaded
	}
	return c.name, nil
}

// sheetHandle implements backend.Sheet.
type sheetHandle struct {
	tx   *transaction
	name string
}

// Name implements backend.Sheet.
func (s *sheetHandle) Name() string { return s.name }

// Activate implements backend.Sheet.
func (s *sheetHandle) Activate() {
	name := s.name
	s.tx.schedule(func() error {
		if _, ok := s.tx.wb.sheets[name]; !ok {
			return fmt.Errorf("%w: %q", backend.ErrNoSuchSheet, name)
		}
		s.tx.wb.active = name
		return nil
	})
}

// Range implements backend.Sheet.
func (s *sheetHandle) Range(address string) (backend.Range, error) {
	rect, err := backend.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return &rangeHandle{tx: s.tx, sheet: s.name, rect: rect}, nil
}

// RangeByIndex implements backend.Sheet.
func (s *sheetHandle) RangeByIndex(rowOffset, colOffset, rowCount, colCount int) (backend.Range, error) {
	if rowOffset < 0 || colOffset < 0 || rowCount < 1 || colCount < 1 {
		return nil, fmt.Errorf("%w: index range (%d,%d,%d,%d)", backend.ErrInvalidAddress,
			rowOffset, colOffset, rowCount, colCount)
	}
	rect := backend.Rect{Row: rowOffset, Col: colOffset, Rows: rowCount, Cols: colCount}
	return &rangeHandle{tx: s.tx, sheet: s.name, rect: rect}, nil
}

// RowStrip implements backend.Sheet.
func (s *sheetHandle) RowStrip(start, count int) (backend.Range, error) {
	if start < 0 || count < 1 {
		return nil, fmt.Errorf("%w: row strip (%d,%d)", backend.ErrInvalidAddress, start, count)
	}
	rect := backend.Rect{Row: start, Col: 0, Rows: count, Cols: 1}
	return &rangeHandle{tx: s.tx, sheet: s.name, rect: rect, strip: stripRows}, nil
}

// ColumnStrip implements backend.Sheet.
func (s *sheetHandle) ColumnStrip(start, count int) (backend.Range, error) {
	if start < 0 || count < 1 {
		return nil, fmt.Errorf("%w: column strip (%d,%d)", backend.ErrInvalidAddress, start, count)
	}
	rect := backend.Rect{Row: 0, Col: start, Rows: 1, Cols: count}
	return &rangeHandle{tx: s.tx, sheet: s.name, rect: rect, strip: stripCols}, nil
}

// AddTable implements backend.Sheet.
func (s *sheetHandle) AddTable(spec backend.TableSpec) (backend.Created, error) {
	if _, err := backend.ParseAddress(spec.Address); err != nil {
		return nil, err
	}
	created := &createdHandle{}
	sheetName := s.name
	s.tx.schedule(func() error {
		wb := s.tx.wb
		if _, err := wb.sheetLocked(sheetName); err != nil {
			return err
		}
		created.name = wb.assignTableName(spec.Name)
		created.synced = true
		return nil
	})
	return created, nil
}

// AddChart implements backend.Sheet.
func (s *sheetHandle) AddChart(spec backend.ChartSpec) (backend.Created, error) {
	if _, err := backend.ParseAddress(spec.SourceAddress); err != nil {
		return nil, err
	}
	created := &createdHandle{}
	sheetName := s.name
	s.tx.schedule(func() error {
		wb := s.tx.wb
		if _, err := wb.sheetLocked(sheetName); err != nil {
			return err
		}
		created.name = wb.assignChartName(spec.Name)
		created.synced = true
		return nil
	})
	return created, nil
}
