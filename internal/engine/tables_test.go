package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scattaneo/pharmapartner/internal/model"
)

func classifiedAggregates() []model.PharmacyAggregate {
	return []model.PharmacyAggregate{
		{CodCRM: "PH-01", TotalRevenue: 1200, Category: model.CategorySilver},
		{CodCRM: "PH-02", TotalRevenue: 1500, Category: model.CategoryGold},
		{CodCRM: "PH-03", TotalRevenue: 1600, Category: model.CategoryGold},
		{CodCRM: "PH-04", TotalRevenue: 2500, Category: model.CategoryPlatinum},
		{CodCRM: "PH-05", TotalRevenue: 100, Category: model.CategoryUnassigned},
		{CodCRM: "PH-06", TotalRevenue: 1400, Category: model.CategorySilver},
		{CodCRM: "PH-07", TotalRevenue: 1100, Category: model.CategorySilver},
	}
}

func TestBuildCategoryPivot(t *testing.T) {
	pivot := BuildCategoryPivot(classifiedAggregates())

	require.Equal(t, model.CategoryOrder, pivot.Columns)
	// Tallest column (Silver, 3 IDs) sets the height; every row is full width.
	require.Len(t, pivot.Rows, 3)
	for _, row := range pivot.Rows {
		require.Len(t, row, len(model.CategoryOrder))
	}

	assert.Equal(t, []string{"PH-01", "PH-02", "PH-04", "PH-05"}, pivot.Rows[0])
	assert.Equal(t, []string{"PH-06", "PH-03", "", ""}, pivot.Rows[1])
	assert.Equal(t, []string{"PH-07", "", "", ""}, pivot.Rows[2])
}

func TestBuildCategoryPivot_RoundTrip(t *testing.T) {
	aggs := classifiedAggregates()
	pivot := BuildCategoryPivot(aggs)

	// Every pharmacy identifier appears exactly once, under the column
	// matching its assigned category.
	seen := make(map[string]model.Category)
	for _, row := range pivot.Rows {
		for c, id := range row {
			if id == "" {
				continue
			}
			_, dup := seen[id]
			require.False(t, dup, "identifier %s appears twice", id)
			seen[id] = pivot.Columns[c]
		}
	}

	require.Len(t, seen, len(aggs))
	for _, agg := range aggs {
		assert.Equal(t, agg.Category, seen[agg.CodCRM], "pharmacy %s", agg.CodCRM)
	}
}

func TestBuildCategoryPivot_Empty(t *testing.T) {
	pivot := BuildCategoryPivot(nil)

	assert.Equal(t, model.CategoryOrder, pivot.Columns)
	assert.Empty(t, pivot.Rows)
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(classifiedAggregates())
	require.Len(t, summary, len(model.CategoryOrder)+1)

	assert.Equal(t, model.SummaryRow{Label: "Silver", NumPharmacies: 3, TotalRevenue: 3700}, summary[0])
	assert.Equal(t, model.SummaryRow{Label: "Gold", NumPharmacies: 2, TotalRevenue: 3100}, summary[1])
	assert.Equal(t, model.SummaryRow{Label: "Platinum", NumPharmacies: 1, TotalRevenue: 2500}, summary[2])
	assert.Equal(t, model.SummaryRow{Label: "Unassigned", NumPharmacies: 1, TotalRevenue: 100}, summary[3])

	total := summary[4]
	assert.Equal(t, model.GrandTotalLabel, total.Label)
	// The grand total covers Silver+Gold+Platinum; Unassigned is excluded
	// even though it is non-empty.
	assert.Equal(t, 6, total.NumPharmacies)
	assert.InDelta(t, 9300, total.TotalRevenue, 1e-9)
}

func TestBuildSummary_GrandTotalMatchesCategoryRows(t *testing.T) {
	summary := BuildSummary(classifiedAggregates())

	var count int
	var revenue float64
	for _, row := range summary[:len(model.CategoryOrder)] {
		if row.Label == string(model.CategoryUnassigned) {
			continue
		}
		count += row.NumPharmacies
		revenue += row.TotalRevenue
	}

	total := summary[len(summary)-1]
	assert.Equal(t, count, total.NumPharmacies)
	assert.InDelta(t, revenue, total.TotalRevenue, 1e-9)
}

func TestBuildSummary_Empty(t *testing.T) {
	summary := BuildSummary(nil)
	require.Len(t, summary, len(model.CategoryOrder)+1)

	for _, row := range summary {
		assert.Zero(t, row.NumPharmacies, "row %q", row.Label)
		assert.Zero(t, row.TotalRevenue, "row %q", row.Label)
	}
	assert.Equal(t, model.GrandTotalLabel, summary[len(summary)-1].Label)
}

func TestBuildSummary_OnlyUnassigned(t *testing.T) {
	summary := BuildSummary([]model.PharmacyAggregate{
		{CodCRM: "PH-1", TotalRevenue: 500, Category: model.CategoryUnassigned},
	})

	total := summary[len(summary)-1]
	assert.Zero(t, total.NumPharmacies)
	assert.Zero(t, total.TotalRevenue)
}
