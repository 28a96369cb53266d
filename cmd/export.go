package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/shifttap/internal/document"
	applog "github.com/Tiliavir/shifttap/internal/log"
	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/pdf"
	"github.com/Tiliavir/shifttap/internal/selection"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

var (
	exportMode      string
	exportMonth     string
	exportFrom      string
	exportTo        string
	exportOutputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the monthly PDF report",
	Long: `Write a PDF report for one month or for an inclusive date range.

Every month touched by the selection gets a summary page and detail pages.
The file is named Shift-Tap_YYYY-MM-DD.pdf after today's date.`,
	Example: `  shifttap export --month 2026-02
  shifttap export --mode range --from 2026-02-01 --to 2026-03-31`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportMode, "mode", "month", "Selection mode: month or range")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Month to export as YYYY-MM (default: latest month with entries)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day of the range as YYYY-MM-DD (default: first of this month)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day of the range as YYYY-MM-DD (default: end of this month)")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Directory for the PDF (default: output_dir from config)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}

	req, err := buildRequest(state, exportMode, exportMonth, exportFrom, exportTo, now())
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if exportOutputDir != "" {
		dir = exportOutputDir
	}

	a := document.New(document.Options{
		Open:      pdfOpener(cfg.PageSize),
		OutputDir: dir,
		Now:       now,
		Logger:    logger.WithComponent(applog.ComponentExport),
	})
	path, err := a.Export(state, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// buildRequest validates the export flags and fills in defaults: the latest
// month with entries in month mode, the current month in range mode.
func buildRequest(state model.AppState, mode, month, from, to string, today time.Time) (selection.Request, error) {
	m, err := selection.ParseMode(mode)
	if err != nil {
		return selection.Request{}, err
	}

	if m == selection.ModeMonth {
		if month == "" {
			month = latestMonth(state.Entries)
		}
		if month != "" {
			if _, _, err := timecalc.ParseMonthKey(month); err != nil {
				return selection.Request{}, err
			}
		}
		return selection.Request{Mode: m, Month: month}, nil
	}

	if from == "" && to == "" {
		return selection.DefaultRange(today), nil
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := timecalc.ParseDate(d); err != nil {
			return selection.Request{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
		}
	}
	return selection.Request{Mode: m, From: from, To: to}, nil
}

func latestMonth(entries []model.TimeEntry) string {
	months := selection.Months(entries)
	if len(months) == 0 {
		return ""
	}
	return months[len(months)-1]
}

// pdfOpener returns a document opener producing fpdf-backed canvases.
func pdfOpener(pageSize string) document.Opener {
	return func() (document.Canvas, error) {
		d, err := pdf.New(pdf.Options{
			PageSize: pageSize,
			Title:    document.DefaultBrand,
			Creator:  "shifttap",
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
