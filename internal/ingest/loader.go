// Package ingest loads tabular sales extracts (CSV, XLSX, Parquet) into the
// engine's input table. Required-column validation happens here, once, so
// downstream components can rely on the schema.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/scattaneo/pharmapartner/internal/common"
	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/schema"
	"github.com/scattaneo/pharmapartner/internal/service"
)

var _ service.TableLoader = (*Loader)(nil)

// Loader parses raw file bytes into a validated input table.
type Loader struct {
	mapping schema.Mapping
}

// NewLoader creates a loader with the given header mapping. A zero Mapping
// matches canonical column names verbatim.
func NewLoader(mapping schema.Mapping) *Loader {
	return &Loader{mapping: mapping}
}

// Load dispatches on the file extension (".csv", ".xlsx", ".parquet").
// Any other extension is a fatal load-boundary error.
func (l *Loader) Load(ctx context.Context, data []byte, ext string) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(ext) {
	case ".csv":
		return l.loadCSV(data)
	case ".xlsx":
		return l.loadXLSX(data)
	case ".parquet":
		return l.loadParquet(data)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
}

// buildTable maps file headers onto schema columns, validates required
// columns, and parses data rows into records.
func (l *Loader) buildTable(headers []string, rows [][]string) (*model.Table, error) {
	index := make(map[string]int, len(headers))
	present := make(map[string]bool, len(headers))
	for _, col := range schema.All() {
		want := l.mapping.Header(col)
		for i, h := range headers {
			if h == want {
				index[col] = i
				present[col] = true
				break
			}
		}
	}

	if err := schema.Validate(present); err != nil {
		return nil, err
	}

	records := make([]model.TransactionRecord, 0, len(rows))
	for n, row := range rows {
		revenue, err := parseRevenue(cell(row, index, schema.ColRevenue))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		rec := model.TransactionRecord{
			CodCRM:       cell(row, index, schema.ColCodCRM),
			Channel:      cell(row, index, schema.ColChannel),
			Causale:      cell(row, index, schema.ColCausale),
			ScopeFlag:    cell(row, index, schema.ColScopeFlag),
			ClusterCheck: cell(row, index, schema.ColClusterCheck),
			Tier:         cell(row, index, schema.ColTier),
			Brand:        cell(row, index, schema.ColBrand),
			Revenue:      revenue,
		}
		if present[schema.ColCanale] {
			rec.Canale = cell(row, index, schema.ColCanale)
		}
		if present[schema.ColProductType] {
			rec.ProductType = cell(row, index, schema.ColProductType)
		}
		records = append(records, rec)
	}

	slog.Debug("loaded input table", "rows", len(records), "columns", len(present))

	return &model.Table{Columns: present, Records: records}, nil
}

// cell reads one column of a row, tolerating rows shorter than the header
// (XLSX readers drop trailing empty cells).
func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseRevenue parses a revenue cell. Blank cells are zero; thousands
// separators are tolerated.
func parseRevenue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid revenue value %q", s)
	}
	return v, nil
}
