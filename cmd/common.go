package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"collections/internal/analytics"
	"collections/internal/config"
	"collections/internal/settings"
	"collections/internal/store"
	"collections/pkg/models"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var errNoDataset = errors.New("no dataset imported; run 'collections import <file>' first")

// app bundles the collaborators a command needs.
type app struct {
	cfg      *config.Config
	store    store.Store
	settings *settings.Service
}

func openApp(ctx context.Context) (*app, error) {
	const op = "openApp"

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var s store.Store
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, err = store.NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		s, err = store.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &app{
		cfg:      cfg,
		store:    s,
		settings: settings.NewService(s, cfg.DefaultSalary),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) dataset(ctx context.Context) (*models.Dataset, error) {
	var ds models.Dataset
	err := store.LoadJSON(ctx, a.store, store.KeyDataset, &ds)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNoDataset
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// analysisInput is what every analysis command works on.
type analysisInput struct {
	invoices []models.Invoice
	params   models.GlobalParameters
	salaries models.SalaryTable
	asOf     time.Time
	scope    string
}

func (a *app) analysisInput(cmd *cobra.Command) (*analysisInput, error) {
	ctx := cmd.Context()

	ds, err := a.dataset(ctx)
	if err != nil {
		return nil, err
	}
	params, err := a.settings.Parameters(ctx)
	if err != nil {
		return nil, err
	}
	salaries, err := a.settings.Salaries(ctx)
	if err != nil {
		return nil, err
	}

	invoices, asOf, scope, err := scopeInvoices(cmd, ds.Invoices, params)
	if err != nil {
		return nil, err
	}
	return &analysisInput{
		invoices: invoices,
		params:   params,
		salaries: salaries,
		asOf:     asOf,
		scope:    scope,
	}, nil
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", string(analytics.PeriodAll), "Rolling period: month, quarter, year or all")
	cmd.Flags().String("as-of", "", "Reference date (format: YYYY-MM-DD, default: today)")
	cmd.Flags().Int("fiscal-year", 0, "Fiscal year to analyse (overrides --period)")
	cmd.Flags().String("fiscal-period", "", "Fiscal period: year, h1, h2, q1-q4 or current_month (overrides --period)")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

// scopeInvoices applies the period flags. A fiscal year or fiscal period
// selects a fiscal window; otherwise the rolling --period applies.
func scopeInvoices(cmd *cobra.Command, invoices []models.Invoice, params models.GlobalParameters) ([]models.Invoice, time.Time, string, error) {
	asOfStr, _ := cmd.Flags().GetString("as-of")
	periodStr, _ := cmd.Flags().GetString("period")
	fiscalYear, _ := cmd.Flags().GetInt("fiscal-year")
	fiscalPeriod, _ := cmd.Flags().GetString("fiscal-period")

	asOf := time.Now().UTC()
	if asOfStr != "" {
		parsed, err := time.Parse(dateLayout, asOfStr)
		if err != nil {
			return nil, time.Time{}, "", fmt.Errorf("invalid as-of date format. Use YYYY-MM-DD: %w", err)
		}
		asOf = parsed
	}

	if fiscalYear != 0 || fiscalPeriod != "" {
		startMonth := analytics.StartMonthIndex(params.FiscalYearStart)
		if fiscalYear == 0 {
			fiscalYear = analytics.FiscalYear(asOf, startMonth)
		}
		if fiscalPeriod == "" {
			fiscalPeriod = "year"
		}
		start, end := analytics.FiscalPeriodRange(fiscalYear, fiscalPeriod, startMonth, asOf)
		scope := fmt.Sprintf("FY%d %s (%s to %s)", fiscalYear, fiscalPeriod, start.Format(dateLayout), end.Format(dateLayout))
		return analytics.FilterByRange(invoices, params.DateBasis, start, end), asOf, scope, nil
	}

	period, ok := analytics.ParsePeriod(periodStr)
	if !ok {
		return nil, time.Time{}, "", fmt.Errorf("unknown period %q: use month, quarter, year or all", periodStr)
	}
	scope := fmt.Sprintf("%s as of %s", period, asOf.Format(dateLayout))
	return analytics.FilterByPeriod(invoices, period, params.DateBasis, asOf), asOf, scope, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHeader(w io.Writer, title, scope string) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "%s - %s\n", title, scope)
	fmt.Fprintln(w, strings.Repeat("=", 80))
}
