package runner

import (
	"context"
	"fmt"

	"github.com/dshills/gridstorm/internal/command"
)

// batchUpdate runs sub-commands sequentially, stopping at the first
// failure. Completed steps are not rolled back here; the caller's undo
// machinery restores them as a unit. The number of steps that completed
// is reported under DataCompletedSteps on both outcomes.
func (r *Runner) batchUpdate(ctx context.Context, p command.BatchUpdate) Result {
	completed := 0
	for i, sub := range p.Updates {
		res := r.Run(ctx, sub)
		if res.IsError() {
			r.log.Warn("batch stopped at step %d: %v", i, res.Err)
			return Error(fmt.Errorf("batch step %d: %w", i, res.Err)).
				WithData(DataCompletedSteps, completed)
		}
		completed++
	}
	return SuccessWithData(DataCompletedSteps, completed)
}
