package sectors

import (
	"github.com/j-veylop/interaction-sector-viewer/internal/chart"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// View is everything the sector tab draws, derived from one record list.
type View struct {
	Counts   []models.CategoryCount
	Percents []models.PercentEntry
	Daily    []models.DailyCount
	Chart    chart.Spec
	Total    int
}

// Empty reports whether there is nothing to chart.
func (v *View) Empty() bool {
	return v == nil || v.Total == 0
}

// BuildView aggregates records and prepares the chart. It returns
// ErrNoRecords for an empty list and never builds a chart in that case.
func BuildView(records []models.InteractionRecord) (*View, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	counts := Aggregate(records)
	percents, err := Percentages(counts, len(records))
	if err != nil {
		return nil, err
	}

	return &View{
		Counts:   counts,
		Percents: percents,
		Daily:    Daily(records),
		Chart:    chart.Build(percents),
		Total:    len(records),
	}, nil
}
