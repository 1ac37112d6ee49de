// Package export serializes engine output tables to delimited-text,
// spreadsheet, columnar-binary, and structured-record formats. Stored values
// stay raw numbers; currency formatting is display-only.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/scattaneo/pharmapartner/internal/engine"
	"github.com/scattaneo/pharmapartner/internal/model"
)

// Table is a generic rectangular dataset ready for serialization.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// AggregatesTable renders per-pharmacy aggregates. Tier count columns follow
// the tiers observed in the run, one column per tier, zero-filled.
func AggregatesTable(aggregates []model.PharmacyAggregate) Table {
	tiers := engine.ObservedTiers(aggregates)

	header := []string{"Cod CRM", "total_net1rev_imponibile"}
	header = append(header, tiers...)
	header = append(header, "tier23_net1rev_imponibile", "Tier 2 & 3", "partnership_category")

	rows := make([][]string, 0, len(aggregates))
	for i := range aggregates {
		agg := &aggregates[i]
		row := []string{agg.CodCRM, formatFloat(agg.TotalRevenue)}
		for _, tier := range tiers {
			row = append(row, strconv.Itoa(agg.TierCount(tier)))
		}
		row = append(row,
			formatFloat(agg.Tier23Revenue),
			strconv.Itoa(agg.Tier2And3Count),
			string(agg.Category))
		rows = append(rows, row)
	}

	return Table{Name: "All Pharmacy Revenue", Header: header, Rows: rows}
}

// PivotTable renders the category→ID pivot.
func PivotTable(pivot model.CategoryPivot) Table {
	header := make([]string, len(pivot.Columns))
	for i, category := range pivot.Columns {
		header[i] = string(category)
	}
	return Table{Name: "Category Table (IDs)", Header: header, Rows: pivot.Rows}
}

// SummaryTable renders the category summary including the grand-total row.
func SummaryTable(summary []model.SummaryRow) Table {
	rows := make([][]string, 0, len(summary))
	for _, row := range summary {
		rows = append(rows, []string{
			row.Label,
			strconv.Itoa(row.NumPharmacies),
			formatFloat(row.TotalRevenue),
		})
	}
	return Table{
		Name:   "Summary Table",
		Header: []string{"partnership_category", "num_pharmacies", "total_revenue"},
		Rows:   rows,
	}
}

// RunsTable renders the stored-runs listing.
func RunsTable(runs []model.RunRecord) (Table, error) {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		filtersJSON, err := json.Marshal(run.Filters)
		if err != nil {
			return Table{}, fmt.Errorf("failed to marshal filters for run %s: %w", run.ID, err)
		}
		rows = append(rows, []string{
			run.ID,
			run.Label,
			run.CreatedAt.UTC().Format(time.RFC3339),
			string(filtersJSON),
			formatFloat(run.Thresholds.SilverMin),
			formatFloat(run.Thresholds.GoldMin),
			formatFloat(run.Thresholds.GoldMax),
			formatFloat(run.Thresholds.PlatinumMin),
		})
	}
	return Table{
		Name:   "Stored Runs",
		Header: []string{"run_id", "label", "timestamp", "filters", "silver_min", "gold_min", "gold_max", "platinum_min"},
		Rows:   rows,
	}, nil
}

// FormatRevenueColumns returns a display copy of a table with the named
// columns rendered as euro amounts. Cells that do not parse as numbers are
// left alone.
func FormatRevenueColumns(t Table, cols ...string) Table {
	targets := make(map[int]bool, len(cols))
	for i, header := range t.Header {
		for _, col := range cols {
			if header == col {
				targets[i] = true
			}
		}
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		formatted := append([]string(nil), row...)
		for i := range formatted {
			if !targets[i] {
				continue
			}
			if v, err := strconv.ParseFloat(formatted[i], 64); err == nil {
				formatted[i] = FormatEuro(v)
			}
		}
		rows[r] = formatted
	}

	return Table{Name: t.Name, Header: t.Header, Rows: rows}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
