// Package engine implements the revenue aggregation and tier-classification
// pipeline: record filtering, per-pharmacy aggregation, threshold
// classification, and output table construction. Compute is pure and
// stateless; concurrent invocations over independent inputs are safe.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/schema"
)

// Compute runs the full tiering pipeline over one input table and returns
// the per-pharmacy aggregates, the category pivot, and the summary table.
// A missing mandatory column aborts the run with no partial output. An
// empty filtered set is not an error: the tables come back empty with a
// zero-filled grand total.
func Compute(table *model.Table, filters model.Filters, thresholds model.Thresholds) (*model.RunOutputs, error) {
	if table == nil {
		return nil, fmt.Errorf("input table cannot be nil")
	}
	if err := schema.Validate(table.Columns); err != nil {
		return nil, err
	}

	records := FilterRecords(table, filters)
	aggregates := Aggregate(records)
	Classify(aggregates, thresholds)

	slog.Debug("computed tiering run",
		"pharmacies", len(aggregates),
		"silver_min", thresholds.SilverMin,
		"gold_min", thresholds.GoldMin,
		"gold_max", thresholds.GoldMax,
		"platinum_min", thresholds.PlatinumMin)

	return &model.RunOutputs{
		Aggregates: aggregates,
		Pivot:      BuildCategoryPivot(aggregates),
		Summary:    BuildSummary(aggregates),
	}, nil
}
