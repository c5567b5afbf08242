package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"collections/internal/analytics"
	"collections/internal/logger"
	"collections/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Importer turns a raw table into a normalized Dataset.
type Importer struct {
	progress io.Writer
	log      zerolog.Logger
}

// NewImporter creates an importer that reports row progress to progress.
// A nil writer disables the progress bar.
func NewImporter(progress io.Writer) *Importer {
	return &Importer{
		progress: progress,
		log:      logger.WithComponent("ingest"),
	}
}

// Import detects the column mapping, applies overrides and normalizes every
// row. It fails only when a required field ends up unmapped.
func (im *Importer) Import(table *Table, fileName string, overrides map[string]string, now time.Time) (*models.Dataset, error) {
	const op = "Import"

	if table == nil || len(table.Columns) == 0 {
		return nil, NewIngestError(op, ErrEmptyTable, fileName)
	}

	mapping := DetectMapping(table.Columns)
	if err := ApplyOverrides(mapping, overrides, table.Columns); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	im.log.Debug().
		Interface("mapping", mapping).
		Str("file", fileName).
		Msg("Resolved column mapping")

	if missing := mapping.Missing(); len(missing) > 0 {
		return nil, NewIngestError(op, ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	bar := im.newBar(len(table.Rows))
	invoices := make([]models.Invoice, len(table.Rows))
	for i, row := range table.Rows {
		invoices[i] = analytics.NormalizeInvoice(row, mapping, i, now)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	dataset := &models.Dataset{
		ID:         uuid.NewString(),
		FileName:   fileName,
		Columns:    table.Columns,
		Mapping:    mapping,
		Invoices:   invoices,
		ImportedAt: now,
	}

	im.log.Info().
		Str("dataset_id", dataset.ID).
		Str("file", fileName).
		Int("invoices", len(invoices)).
		Msg("Dataset imported")

	return dataset, nil
}

func (im *Importer) newBar(rows int) *progressbar.ProgressBar {
	if im.progress == nil || rows == 0 {
		return nil
	}
	return progressbar.NewOptions(rows,
		progressbar.OptionSetWriter(im.progress),
		progressbar.OptionSetDescription("Normalizing rows"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
