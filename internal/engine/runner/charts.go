package runner

import (
	"context"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
)

// createChart creates a chart from a source region. An empty chart type
// falls back to the backend default. The assigned name is reported under
// DataChartName.
func (r *Runner) createChart(ctx context.Context, p command.CreateChart) Result {
	chartType := p.ChartType
	if chartType == "" {
		chartType = backend.DefaultChartType
	}
	var created backend.Created
	err := r.conn.RunTransaction(ctx, func(tx backend.Transaction) error {
		sheet, err := tx.Sheet(p.Sheet)
		if err != nil {
			return err
		}
		created, err = sheet.AddChart(backend.ChartSpec{
			SourceAddress: p.Source,
			ChartType:     chartType,
			Name:          p.Name,
			Geometry:      p.Geometry,
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
	return SuccessWithData(DataChartName, name)
}
