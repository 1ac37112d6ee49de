package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scattaneo/pharmapartner/internal/cli"
	"github.com/scattaneo/pharmapartner/internal/engine"
	"github.com/scattaneo/pharmapartner/internal/export"
	"github.com/scattaneo/pharmapartner/internal/ingest"
	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/schema"
)

func analyzeCmd() *cobra.Command {
	var (
		filterFlags []string
		storeLabel  string
		outputDir   string
		columnsFile string
	)

	defaults := model.DefaultThresholds()

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Classify pharmacies from a sales extract",
		Long: `Load a CSV, XLSX, or Parquet sales extract, aggregate revenue per
pharmacy, assign partnership categories by the configured thresholds, and
display the revenue, category, and summary tables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			mapping, err := schema.LoadMapping(columnsFile)
			if err != nil {
				return err
			}
			filters, err := parseFilterFlags(filterFlags)
			if err != nil {
				return err
			}

			data, err := readFileWithProgress(path)
			if err != nil {
				return err
			}

			loader := ingest.NewLoader(mapping)
			table, err := loader.Load(ctx, data, filepath.Ext(path))
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.SuccessStyle.Render("File loaded successfully!"))

			thresholds := thresholdsFromConfig()
			outputs, err := engine.Compute(table, filters, thresholds)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Rows used for this run: %d (%d pharmacies in scope)\n\n",
				len(table.Records), len(outputs.Aggregates))
			if len(outputs.Aggregates) == 0 {
				fmt.Fprintln(out, cli.WarningStyle.Render("No pharmacies matched the eligibility rule and filters."))
			}

			aggregates := export.FormatRevenueColumns(
				export.AggregatesTable(outputs.Aggregates), "total_net1rev_imponibile", "tier23_net1rev_imponibile")
			if err := cli.RenderTable(out, aggregates); err != nil {
				return err
			}
			if err := cli.RenderTable(out, export.PivotTable(outputs.Pivot)); err != nil {
				return err
			}
			summary := export.FormatRevenueColumns(export.SummaryTable(outputs.Summary), "total_revenue")
			if err := cli.RenderTable(out, summary); err != nil {
				return err
			}

			if outputDir != "" {
				if err := writeCSVOutputs(outputDir, outputs); err != nil {
					return err
				}
				fmt.Fprintln(out, cli.SuccessStyle.Render("Wrote result tables to "+outputDir))
			}

			if storeLabel != "" {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() {
					_ = store.Close()
				}()

				id, err := store.StoreRun(ctx, storeLabel, filters, thresholds, *outputs)
				if err != nil {
					return fmt.Errorf("failed to store run: %w", err)
				}
				fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("Run stored as %s!", id)))
			}

			return nil
		},
	}

	cmd.Flags().Float64("silver-min", defaults.SilverMin, "min total revenue for Silver (exclusive)")
	cmd.Flags().Float64("gold-min", defaults.GoldMin, "min total revenue for Gold (inclusive)")
	cmd.Flags().Float64("gold-max", defaults.GoldMax, "max total revenue for Gold (exclusive)")
	cmd.Flags().Float64("platinum-min", defaults.PlatinumMin, "min total revenue for Platinum (inclusive)")
	cmd.Flags().StringArrayVar(&filterFlags, "filter", nil, "optional column filter, e.g. --filter Product_Type=Rx,OTC (repeatable)")
	cmd.Flags().StringVar(&storeLabel, "store", "", "store this run under the given label")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "write result tables as CSV into this directory")
	cmd.Flags().StringVar(&columnsFile, "columns", "", "YAML column-mapping file overriding expected headers")

	_ = viper.BindPFlag("thresholds.silver_min", cmd.Flags().Lookup("silver-min"))
	_ = viper.BindPFlag("thresholds.gold_min", cmd.Flags().Lookup("gold-min"))
	_ = viper.BindPFlag("thresholds.gold_max", cmd.Flags().Lookup("gold-max"))
	_ = viper.BindPFlag("thresholds.platinum_min", cmd.Flags().Lookup("platinum-min"))

	return cmd
}

// readFileWithProgress materializes the input file in memory, showing a
// byte-level progress bar for large extracts.
func readFileWithProgress(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(fi.Size(), "loading "+filepath.Base(path))
	var buf bytes.Buffer
	buf.Grow(int(fi.Size()))
	if _, err := io.Copy(io.MultiWriter(&buf, bar), f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	_ = bar.Finish()

	return buf.Bytes(), nil
}

// writeCSVOutputs writes the three result tables into dir.
func writeCSVOutputs(dir string, outputs *model.RunOutputs) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name  string
		table export.Table
	}{
		{"all_pharmacy_revenue.csv", export.AggregatesTable(outputs.Aggregates)},
		{"store_categories_ids.csv", export.PivotTable(outputs.Pivot)},
		{"store_categories_summary.csv", export.SummaryTable(outputs.Summary)},
	}

	for _, file := range files {
		if err := writeTableFile(filepath.Join(dir, file.name), file.table); err != nil {
			return err
		}
	}
	return nil
}

func writeTableFile(path string, table export.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, table); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
