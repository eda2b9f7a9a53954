package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// insertRows inserts a row strip, shifting existing cells down.
func (r *Runner) insertRows(ctx context.Context, p command.InsertRows) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Sheet)
		if err != nil {
			return err
		}
		strip, err := sheet.RowStrip(p.Row, p.Count)
		if err != nil {
			return err
		}
		strip.Insert(backend.ShiftDown)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}

// insertColumns inserts a column strip, shifting existing cells right.
func (r *Runner) insertColumns(ctx context.Context, p command.InsertColumns) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Sheet)
		if err != nil {
			return err
		}
		strip, err := sheet.ColumnStrip(p.Column, p.Count)
		if err != nil {
			return err
		}
		strip.Insert(backend.ShiftRight)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}

// deleteRows deletes a row strip, shifting remaining cells up.
func (r *Runner) deleteRows(ctx context.Context, p command.DeleteRows) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Sheet)
		if err != nil {
			return err
		}
		strip, err := sheet.RowStrip(p.Row, p.Count)
		if err != nil {
			return err
		}
		strip.Delete(backend.ShiftUp)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}

// deleteColumns deletes a column strip, shifting remaining cells left.
func (r *Runner) deleteColumns(ctx context.Context, p command.DeleteColumns) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Sheet)
		if err != nil {
			return err
		}
		strip, err := sheet.ColumnStrip(p.Column, p.Count)
		if err != nil {
			return err
		}
		strip.Delete(backend.ShiftLeft)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}
