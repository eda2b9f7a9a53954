package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// setFormat applies a partial format to the target region. Fields absent
// from the request are left untouched on the target; font fields are
// assigned individually, not as a wholesale replacement.
func (r *Runner) setFormat(ctx context.Context, p command.SetFormat) Result {
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		rng, err := targetRange(tx, p.Target)
		if err != nil {
			return err
		}
		rng.ApplyFormat(p.Format)
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}
