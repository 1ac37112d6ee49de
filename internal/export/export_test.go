package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scattaneo/pharmapartner/internal/model"
)

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		want  string
		value float64
	}{
		{"€0.00", 0},
		{"€5.25", 5.25},
		{"€1,000.00", 1000},
		{"€1,234.50", 1234.5},
		{"€1,234,567.89", 1234567.89},
		{"€-1,234.50", -1234.5},
		{"€999.99", 999.994},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEuro(tt.value))
	}
}

func TestAggregatesTable(t *testing.T) {
	aggs := []model.PharmacyAggregate{
		{
			CodCRM:            "PH-1",
			TotalRevenue:      1500.5,
			Tier23Revenue:     900,
			TierProductCounts: map[string]int{"Tier 1": 1, model.TierTwo: 2, model.TierThree: 3},
			Tier2And3Count:    5,
			Category:          model.CategoryGold,
		},
	}

	table := AggregatesTable(aggs)
	assert.Equal(t, []string{
		"Cod CRM", "total_net1rev_imponibile",
		"Tier 1", model.TierTwo, model.TierThree,
		"tier23_net1rev_imponibile", "Tier 2 & 3", "partnership_category",
	}, table.Header)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"PH-1", "1500.5", "1", "2", "3", "900", "5", "Gold"}, table.Rows[0])
}

func TestFormatRevenueColumns(t *testing.T) {
	table := Table{
		Header: []string{"partnership_category", "num_pharmacies", "total_revenue"},
		Rows: [][]string{
			{"Gold", "2", "3100"},
			{model.GrandTotalLabel, "2", "3100"},
		},
	}

	display := FormatRevenueColumns(table, "total_revenue")
	assert.Equal(t, "€3,100.00", display.Rows[0][2])
	// Untargeted columns are untouched, and the original stays raw.
	assert.Equal(t, "2", display.Rows[0][1])
	assert.Equal(t, "3100", table.Rows[0][2])
}

func TestWriteCSV(t *testing.T) {
	table := Table{
		Header: []string{"partnership_category", "num_pharmacies", "total_revenue"},
		Rows: [][]string{
			{"Silver", "3", "3700"},
			{"Gold", "2", "3100"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	want := "partnership_category,num_pharmacies,total_revenue\nSilver,3,3700\nGold,2,3100\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	table := Table{
		Header: []string{"run_id", "label"},
		Rows:   [][]string{{"abc", "first run"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, table))

	var records []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0]["run_id"])
	assert.Equal(t, "first run", records[0]["label"])
}

func TestWriteXLSX(t *testing.T) {
	table := Table{
		Name:   "Summary Table",
		Header: []string{"partnership_category", "num_pharmacies"},
		Rows:   [][]string{{"Silver", "3"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))
	assert.NotZero(t, buf.Len())
}

func TestRunsTable(t *testing.T) {
	runs := []model.RunRecord{
		{
			ID:         "run-1",
			Label:      "baseline",
			CreatedAt:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			Filters:    model.Filters{"Product_Type": {"Rx"}},
			Thresholds: model.Thresholds{SilverMin: 1000, GoldMin: 1000, GoldMax: 2000, PlatinumMin: 2000},
		},
	}

	table, err := RunsTable(runs)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "run-1", row[0])
	assert.Equal(t, "baseline", row[1])
	assert.Equal(t, "2025-06-01T10:30:00Z", row[2])
	assert.True(t, strings.Contains(row[3], "Product_Type"))
	assert.Equal(t, "1000", row[4])
}

func TestRunsExportRows(t *testing.T) {
	runs := []model.RunRecord{
		{
			ID:         "run-1",
			Label:      "baseline",
			CreatedAt:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			Thresholds: model.Thresholds{SilverMin: 500, GoldMin: 600, GoldMax: 700, PlatinumMin: 800},
		},
	}

	rows, err := RunsExportRows(runs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "run-1", rows[0].RunID)
	assert.InDelta(t, 500, rows[0].SilverMin, 1e-9)
	assert.InDelta(t, 800, rows[0].PlatinumMin, 1e-9)
}
