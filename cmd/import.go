package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collections/internal/ingest"
	"collections/internal/logger"
	"collections/internal/sheets"
	"collections/internal/store"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an accounts-receivable spreadsheet",
	Long: `Import invoices from a CSV or XLSX file, or from a Google Sheets worksheet.

Columns are matched to invoice fields by header name. Use --map to override
a match or to map a column the detection missed. The imported dataset
replaces any previous one.

Required for --from-google-sheet:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_SHEET_URL - Google Sheets URL containing the AR worksheet`,
	Example: `  # Import a CSV export
  collections import receivables.csv

  # Import one worksheet of a workbook and fix the collector column
  collections import ar.xlsx --sheet "June" --map collectorName="Account Owner"

  # Import from Google Sheets
  collections import --from-google-sheet --sheet AR`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("sheet", "", "Worksheet to read (XLSX or Google Sheets)")
	importCmd.Flags().StringArray("map", nil, "Column override as field=column (repeatable)")
	importCmd.Flags().Bool("from-google-sheet", false, "Read from the worksheet at GOOGLE_SHEET_URL")
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("import")
	ctx := cmd.Context()

	sheetName, _ := cmd.Flags().GetString("sheet")
	mappings, _ := cmd.Flags().GetStringArray("map")
	fromSheet, _ := cmd.Flags().GetBool("from-google-sheet")

	if !fromSheet && len(args) == 0 {
		return fmt.Errorf("a file is required unless --from-google-sheet is set")
	}

	overrides, err := ingest.ParseOverrides(mappings)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var table *ingest.Table
	var source string
	if fromSheet {
		if sheetName == "" {
			return fmt.Errorf("--sheet is required with --from-google-sheet")
		}
		table, err = readGoogleSheet(ctx, a, sheetName)
		source = "sheet:" + sheetName
	} else {
		table, err = ingest.ReadFile(args[0], sheetName)
		source = filepath.Base(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	log.Info().
		Str("source", source).
		Int("columns", len(table.Columns)).
		Int("rows", len(table.Rows)).
		Msg("Source read")

	dataset, err := ingest.NewImporter(os.Stderr).Import(table, source, overrides, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := store.SaveJSON(ctx, a.store, store.KeyDataset, dataset); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	printImportSummary(cmd, dataset)
	return nil
}

func readGoogleSheet(ctx context.Context, a *app, sheetName string) (*ingest.Table, error) {
	if err := a.cfg.RequireSheetURL(); err != nil {
		return nil, err
	}
	svc, err := sheets.NewSheetsService(ctx, a.cfg.GoogleSheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}
	return ingest.ReadSheet(ctx, svc, sheetName)
}

func printImportSummary(cmd *cobra.Command, ds *models.Dataset) {
	w := cmd.OutOrStdout()
	printHeader(w, "Import", ds.FileName)
	fmt.Fprintf(w, "Dataset:  %s\n", ds.ID)
	fmt.Fprintf(w, "Invoices: %d\n\n", len(ds.Invoices))

	fmt.Fprintln(w, "Column mapping:")
	var unmapped []string
	for _, field := range models.CanonicalFields {
		col, ok := ds.Mapping.Column(field)
		if !ok {
			unmapped = append(unmapped, field)
			continue
		}
		fmt.Fprintf(w, "  %-16s <- %s\n", field, col)
	}
	if len(unmapped) > 0 {
		fmt.Fprintf(w, "\nUnmapped (defaults apply): %s\n", strings.Join(unmapped, ", "))
	}
}
