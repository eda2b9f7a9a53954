package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// createTable converts a region into a structured table. The backend may
// reassign a taken name; the final name is read after the flush and
// reported under DataTableName.
func (r *Runner) createTable(ctx context.Context, p command.CreateTable) Result {
	var created backend.Created
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Target.Sheet)
		if err != nil {
			return err
		}
		created, err = sheet.AddTable(backend.TableSpec{
			Address:    p.Target.Address,
			Name:       p.Name,
			HasHeaders: p.HasHeaders,
			Style:      p.Style,
		})
		return err
	})
	if err != nil {
		return Error(err)
	}
	name, err := created.Name()
	if err != nil {
		return Error(err)
	}
	return SuccessWithData(DataTableName, name)
}
