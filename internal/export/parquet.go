package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/scattaneo/pharmapartner/internal/model"
)

// RunsExportRow is the flat row shape for columnar export of the stored-runs
// listing.
type RunsExportRow struct {
	RunID       string  `parquet:"run_id" json:"run_id"`
	Label       string  `parquet:"label" json:"label"`
	Timestamp   string  `parquet:"timestamp" json:"timestamp"`
	Filters     string  `parquet:"filters" json:"filters"`
	SilverMin   float64 `parquet:"silver_min" json:"silver_min"`
	GoldMin     float64 `parquet:"gold_min" json:"gold_min"`
	GoldMax     float64 `parquet:"gold_max" json:"gold_max"`
	PlatinumMin float64 `parquet:"platinum_min" json:"platinum_min"`
}

// RunsExportRows flattens run records for parquet export.
func RunsExportRows(runs []model.RunRecord) ([]RunsExportRow, error) {
	rows := make([]RunsExportRow, 0, len(runs))
	for _, run := range runs {
		filtersJSON, err := json.Marshal(run.Filters)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filters for run %s: %w", run.ID, err)
		}
		rows = append(rows, RunsExportRow{
			RunID:       run.ID,
			Label:       run.Label,
			Timestamp:   run.CreatedAt.UTC().Format(time.RFC3339),
			Filters:     string(filtersJSON),
			SilverMin:   run.Thresholds.SilverMin,
			GoldMin:     run.Thresholds.GoldMin,
			GoldMax:     run.Thresholds.GoldMax,
			PlatinumMin: run.Thresholds.PlatinumMin,
		})
	}
	return rows, nil
}

// WriteParquet serializes typed rows to the parquet columnar format.
func WriteParquet[T any](w io.Writer, rows []T) error {
	pw := parquet.NewGenericWriter[T](w)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
