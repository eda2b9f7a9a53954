// Package runner dispatches typed mutation commands to the operations
// that perform them against the document backend.
//
// Dispatch is an exhaustive type switch over the closed command set. Every
// backend fault is caught at the operation boundary and converted into a
// failure Result; nothing propagates as a raw error across this boundary.
package runner

import (
	"context"
	"fmt"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
	"github.com/dshills/gridstorm/internal/logging"
)

// Runner executes commands against one backend connection.
type Runner struct {
	conn backend.Connection
	log  *logging.Logger
}

// New creates a runner. A nil logger discards output.
func New(conn backend.Connection, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Null
	}
	return &Runner{conn: conn, log: log.WithComponent("runner")}
}

// Run dispatches a command by its parameter type and returns a structured
// result. The default arm is unreachable for commands built from this
// package's param types; it guards external callers constructing commands
// by hand.
func (r *Runner) Run(ctx context.Context, cmd command.Command) Result {
	r.log.Debug("run %s", cmd.Kind())

	switch p := cmd.Params.(type) {
	case command.SetValue:
		return r.setValue(ctx, p)
	case command.SetFormula:
		return r.setFormula(ctx, p)
	case command.SetFormat:
		return r.setFormat(ctx, p)
	case command.InsertRows:
		return r.insertRows(ctx, p)
	case command.InsertColumns:
		return r.insertColumns(ctx, p)
	case command.DeleteRows:
		return r.deleteRows(ctx, p)
	case command.DeleteColumns:
		return r.deleteColumns(ctx, p)
	case command.CreateSheet:
		return r.createSheet(ctx, p)
	case command.CreateTable:
		return r.createTable(ctx, p)
	case command.CreateChart:
		return r.createChart(ctx, p)
	case command.BatchUpdate:
		return r.batchUpdate(ctx, p)
	default:
		return Error(fmt.Errorf("%w: %T", command.ErrUnknownOperation, cmd.Params))
	}
}

// targetRange resolves an operation target inside a transaction.
func targetRange(tx backend.Transaction, target command.Target) (backend.Range, error) {
	sheet, err := tx.Sheet(target.Sheet)
	if err != nil {
		return nil, err
	}
	return sheet.Range(target.Address)
}
