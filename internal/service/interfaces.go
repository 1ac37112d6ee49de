// Package service defines the interfaces between the tiering engine, the
// run store, and the presentation layer.
package service

import (
	"context"

	"github.com/scattaneo/pharmapartner/internal/model"
)

// RunStore keeps named snapshots of engine outputs plus the parameters used.
// A store belongs to one session; it is mutated only by StoreRun and
// ClearRuns.
type RunStore interface {
	// StoreRun persists a run snapshot and returns its opaque identifier.
	StoreRun(ctx context.Context, label string, filters model.Filters, thresholds model.Thresholds, outputs model.RunOutputs) (string, error)
	// ListRuns returns stored runs newest first, without table payloads.
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	// GetRun returns one full run record, common.ErrNotFound when absent.
	GetRun(ctx context.Context, id string) (*model.RunRecord, error)
	// ClearRuns removes every stored run.
	ClearRuns(ctx context.Context) error
	Close() error
}

// TableLoader materializes an uploaded dataset into the engine's input
// table, validating required columns once at ingestion.
type TableLoader interface {
	Load(ctx context.Context, data []byte, ext string) (*model.Table, error)
}
