package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// createSheet creates a worksheet and activates it. The assigned name is
// reported under DataSheetName; when the request leaves the name empty
// the backend picks one.
func (r *Runner) createSheet(ctx context.Context, p command.CreateSheet) Result {
	var assigned string
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.AddSheet(p.Name, p.Position, true)
		if err != nil {
			return err
		}
		assigned = sheet.Name()
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return SuccessWithData(DataSheetName, assigned)
}
