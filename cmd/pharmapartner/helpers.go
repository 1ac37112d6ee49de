package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/service"
	"github.com/scattaneo/pharmapartner/internal/storage"
)

// initStorage opens the configured run store and applies migrations.
func initStorage(ctx context.Context) (service.RunStore, error) {
	dbPath := expandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate run store: %w", err)
	}
	return store, nil
}

// expandPath expands ~ and environment variables in a file path.
func expandPath(path string) string {
	if path == "" || path == storage.InMemoryDSN {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// parseFilterFlags turns repeated "Column=v1,v2" flags into engine filters.
func parseFilterFlags(values []string) (model.Filters, error) {
	filters := make(model.Filters)
	for _, raw := range values {
		column, list, ok := strings.Cut(raw, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q, expected Column=value1,value2", raw)
		}
		var include []string
		for _, v := range strings.Split(list, ",") {
			if v != "" {
				include = append(include, v)
			}
		}
		if len(include) == 0 {
			return nil, fmt.Errorf("filter %q has no values", raw)
		}
		filters[column] = append(filters[column], include...)
	}
	return filters, nil
}

// thresholdsFromConfig reads the per-run thresholds, flag values included.
func thresholdsFromConfig() model.Thresholds {
	return model.Thresholds{
		SilverMin:   viper.GetFloat64("thresholds.silver_min"),
		GoldMin:     viper.GetFloat64("thresholds.gold_min"),
		GoldMax:     viper.GetFloat64("thresholds.gold_max"),
		PlatinumMin: viper.GetFloat64("thresholds.platinum_min"),
	}
}
