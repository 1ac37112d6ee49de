package model

// GrandTotalLabel names the synthetic summary row that sums every category
// except Unassigned.
const GrandTotalLabel = "Total Net 1 Rev Imponibile (ex-Unassigned)"

// CategoryPivot is a rectangular table of pharmacy identifiers grouped by
// category. Each column is one category in display order; shorter columns
// are padded with empty cells so every row has the same width.
type CategoryPivot struct {
	Columns []Category `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SummaryRow is one line of the category summary: a category (or the grand
// total label), its pharmacy count, and its summed revenue.
type SummaryRow struct {
	Label         string  `json:"partnership_category"`
	NumPharmacies int     `json:"num_pharmacies"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// RunOutputs bundles the three tables produced by one engine invocation.
type RunOutputs struct {
	Aggregates []PharmacyAggregate `json:"all_pharmacy_revenue"`
	Pivot      CategoryPivot       `json:"category_table_pivot"`
	Summary    []SummaryRow        `json:"summary_table"`
}
