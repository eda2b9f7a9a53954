package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// setValue writes a values grid to the target region.
func (r *Runner) setValue(ctx context.Context, p command.SetValue) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		rng, err := targetRange(tx, p.Target)
		if err != nil {
			return err
		}
		rng.SetValues(p.Values)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}

// setFormula writes a formulas grid to the target region.
func (r *Runner) setFormula(ctx context.Context, p command.SetFormula) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		rng, err := targetRange(tx, p.Target)
		if err != nil {
			return err
		}
		rng.SetFormulas(p.Formulas)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}
