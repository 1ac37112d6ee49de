package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scattaneo/pharmapartner/internal/cli"
	"github.com/scattaneo/pharmapartner/internal/export"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored analysis runs",
		Long:  `List, inspect, export, and clear stored analysis runs.`,
	}

	cmd.AddCommand(listRunsCmd())
	cmd.AddCommand(showRunCmd())
	cmd.AddCommand(exportRunsCmd())
	cmd.AddCommand(clearRunsCmd())

	return cmd
}

func listRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			runs, err := store.ListRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No runs yet. Run 'pharmapartner analyze --store <label>' to store one."))
				return nil
			}

			table, err := export.RunsTable(runs)
			if err != nil {
				return err
			}
			return cli.RenderTable(out, table)
		},
	}
}

func showRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Display one stored run's tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.TitleStyle.Render(fmt.Sprintf("Run %s (%s)", run.ID, run.Label)))
			fmt.Fprintln(out, cli.SubtleStyle.Render(
				"Stored: "+run.CreatedAt.Local().Format("2006-01-02 15:04:05")))
			fmt.Fprintln(out, cli.SubtleStyle.Render(
				fmt.Sprintf("Thresholds: silver_min=%.2f gold_min=%.2f gold_max=%.2f platinum_min=%.2f",
					run.Thresholds.SilverMin, run.Thresholds.GoldMin, run.Thresholds.GoldMax, run.Thresholds.PlatinumMin)))
			fmt.Fprintln(out)

			aggregates := export.FormatRevenueColumns(
				export.AggregatesTable(run.Outputs.Aggregates), "total_net1rev_imponibile", "tier23_net1rev_imponibile")
			if err := cli.RenderTable(out, aggregates); err != nil {
				return err
			}
			if err := cli.RenderTable(out, export.PivotTable(run.Outputs.Pivot)); err != nil {
				return err
			}
			summary := export.FormatRevenueColumns(export.SummaryTable(run.Outputs.Summary), "total_revenue")
			return cli.RenderTable(out, summary)
		},
	}
}

func exportRunsCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored-runs listing",
		Long:  `Serialize the stored-runs listing to CSV, XLSX, Parquet, or JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			runs, err := store.ListRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			format = strings.ToLower(format)
			switch format {
			case "csv", "json", "xlsx", "excel", "parquet":
			default:
				return fmt.Errorf("unsupported export format %q (csv, xlsx, parquet, json)", format)
			}
			if outPath == "" {
				outPath = "net_revenue_cooper." + format
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer func() {
				_ = f.Close()
			}()

			switch format {
			case "csv":
				table, err := export.RunsTable(runs)
				if err != nil {
					return err
				}
				err = export.WriteCSV(f, table)
				if err != nil {
					return err
				}
			case "json":
				table, err := export.RunsTable(runs)
				if err != nil {
					return err
				}
				err = export.WriteJSON(f, table)
				if err != nil {
					return err
				}
			case "xlsx", "excel":
				table, err := export.RunsTable(runs)
				if err != nil {
					return err
				}
				err = export.WriteXLSX(f, table)
				if err != nil {
					return err
				}
			case "parquet":
				rows, err := export.RunsExportRows(runs)
				if err != nil {
					return err
				}
				err = export.WriteParquet(f, rows)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(
				fmt.Sprintf("Exported %d runs to %s", len(runs), outPath)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "parquet", "export format (csv, xlsx, parquet, json)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: net_revenue_cooper.<format>)")

	return cmd
}

func clearRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := store.ClearRuns(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("Cleared stored runs."))
			return nil
		},
	}
}
