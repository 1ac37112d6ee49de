package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/scattaneo/pharmapartner/internal/common"
	"github.com/scattaneo/pharmapartner/internal/model"
)

// StoreRun persists one engine run snapshot and returns its identifier.
func (s *SQLiteStore) StoreRun(ctx context.Context, label string, filters model.Filters, thresholds model.Thresholds, outputs model.RunOutputs) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(label, "label"); err != nil {
		return "", err
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to marshal filters: %w", err)
	}
	thresholdsJSON, err := json.Marshal(thresholds)
	if err != nil {
		return "", fmt.Errorf("failed to marshal thresholds: %w", err)
	}
	aggregatesJSON, err := json.Marshal(outputs.Aggregates)
	if err != nil {
		return "", fmt.Errorf("failed to marshal aggregates: %w", err)
	}
	pivotJSON, err := json.Marshal(outputs.Pivot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal category pivot: %w", err)
	}
	summaryJSON, err := json.Marshal(outputs.Summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, filters, thresholds, aggregates, category_pivot, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, label, time.Now().UTC(),
		string(filtersJSON), string(thresholdsJSON),
		string(aggregatesJSON), string(pivotJSON), string(summaryJSON))
	if err != nil {
		return "", fmt.Errorf("failed to store run: %w", err)
	}

	slog.Info("stored run", "run_id", id, "label", label, "pharmacies", len(outputs.Aggregates))
	return id, nil
}

// ListRuns returns stored runs newest first, without table payloads.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at, filters, thresholds
		FROM runs
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var filtersJSON, thresholdsJSON string
		if err := rows.Scan(&run.ID, &run.Label, &run.CreatedAt, &filtersJSON, &thresholdsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(filtersJSON), &run.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filters for run %s: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(thresholdsJSON), &run.Thresholds); err != nil {
			return nil, fmt.Errorf("failed to unmarshal thresholds for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	slog.Debug("listed runs", "count", len(runs))
	return runs, nil
}

// GetRun returns one full run record including its output tables.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var run model.RunRecord
	var filtersJSON, thresholdsJSON, aggregatesJSON, pivotJSON, summaryJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, filters, thresholds, aggregates, category_pivot, summary
		FROM runs
		WHERE id = ?`, id).Scan(
		&run.ID, &run.Label, &run.CreatedAt,
		&filtersJSON, &thresholdsJSON, &aggregatesJSON, &pivotJSON, &summaryJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if err := json.Unmarshal([]byte(filtersJSON), &run.Filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
	}
	if err := json.Unmarshal([]byte(thresholdsJSON), &run.Thresholds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thresholds: %w", err)
	}
	if err := json.Unmarshal([]byte(aggregatesJSON), &run.Outputs.Aggregates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal aggregates: %w", err)
	}
	if err := json.Unmarshal([]byte(pivotJSON), &run.Outputs.Pivot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category pivot: %w", err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &run.Outputs.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	return &run, nil
}

// ClearRuns removes every stored run.
func (s *SQLiteStore) ClearRuns(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil {
		slog.Info("cleared runs", "count", n)
	}
	return nil
}
