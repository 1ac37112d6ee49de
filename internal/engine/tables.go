package engine

import "github.com/scattaneo/pharmapartner/internal/model"

// BuildCategoryPivot groups pharmacy identifiers by assigned category into a
// rectangular table. Every category appears as a column in display order,
// even when empty; ragged columns are padded with empty cells. Identifiers
// keep the aggregate order within each column.
func BuildCategoryPivot(aggregates []model.PharmacyAggregate) model.CategoryPivot {
	byCategory := make(map[model.Category][]string, len(model.CategoryOrder))
	for i := range aggregates {
		agg := &aggregates[i]
		byCategory[agg.Category] = append(byCategory[agg.Category], agg.CodCRM)
	}

	height := 0
	for _, ids := range byCategory {
		if len(ids) > height {
			height = len(ids)
		}
	}

	rows := make([][]string, height)
	for r := 0; r < height; r++ {
		row := make([]string, len(model.CategoryOrder))
		for c, category := range model.CategoryOrder {
			if ids := byCategory[category]; r < len(ids) {
				row[c] = ids[r]
			}
		}
		rows[r] = row
	}

	return model.CategoryPivot{
		Columns: append([]model.Category(nil), model.CategoryOrder...),
		Rows:    rows,
	}
}

// BuildSummary produces one row per category (count and summed revenue) in
// display order, then a synthetic grand-total row covering every category
// except Unassigned. With no non-Unassigned pharmacies the grand total is
// zero count and zero revenue.
func BuildSummary(aggregates []model.PharmacyAggregate) []model.SummaryRow {
	counts := make(map[model.Category]int, len(model.CategoryOrder))
	revenue := make(map[model.Category]float64, len(model.CategoryOrder))
	for i := range aggregates {
		agg := &aggregates[i]
		counts[agg.Category]++
		revenue[agg.Category] += agg.TotalRevenue
	}

	rows := make([]model.SummaryRow, 0, len(model.CategoryOrder)+1)
	var totalCount int
	var totalRevenue float64
	for _, category := range model.CategoryOrder {
		rows = append(rows, model.SummaryRow{
			Label:         string(category),
			NumPharmacies: counts[category],
			TotalRevenue:  revenue[category],
		})
		if category != model.CategoryUnassigned {
			totalCount += counts[category]
			totalRevenue += revenue[category]
		}
	}

	rows = append(rows, model.SummaryRow{
		Label:         model.GrandTotalLabel,
		NumPharmacies: totalCount,
		TotalRevenue:  totalRevenue,
	})

	return rows
}
