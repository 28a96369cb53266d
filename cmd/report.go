package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/layout"
	"github.com/Tiliavir/shifttap/internal/selection"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

var (
	reportMonth  string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a month's day rows and totals in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Month as YYYY-MM (default: latest month with entries)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json, yaml")
}

func runReport(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}

	key := reportMonth
	if key == "" {
		key = latestMonth(state.Entries)
	}
	if key == "" {
		return fmt.Errorf("no entries in %s", cfg.StateFile)
	}
	if _, _, err := timecalc.ParseMonthKey(key); err != nil {
		return err
	}

	entries := selection.Filter(state.Entries, selection.Request{Mode: selection.ModeMonth, Month: key})
	aggregate.SortEntries(entries)
	m := aggregate.BuildMonth(aggregate.MonthGroup{Key: key, Entries: entries}, state.Settings.NormDayMinutes)

	return writeReport(cmd.OutOrStdout(), m, reportFormat)
}

type dayView struct {
	Date         string   `json:"date" yaml:"date"`
	WorkMinutes  int      `json:"work_minutes" yaml:"work_minutes"`
	PauseMinutes int      `json:"pause_minutes" yaml:"pause_minutes"`
	WorkShifts   int      `json:"work_shifts" yaml:"work_shifts"`
	Types        []string `json:"types,omitempty" yaml:"types,omitempty"`
}

type totalsView struct {
	WorkMinutes     int  `json:"work_minutes" yaml:"work_minutes"`
	PauseMinutes    int  `json:"pause_minutes" yaml:"pause_minutes"`
	WorkShifts      int  `json:"work_shifts" yaml:"work_shifts"`
	RecupDays       int  `json:"recup_days" yaml:"recup_days"`
	VacationDays    int  `json:"vacation_days" yaml:"vacation_days"`
	SickDays        int  `json:"sick_days" yaml:"sick_days"`
	HolidayDays     int  `json:"holiday_days" yaml:"holiday_days"`
	OvertimeMinutes *int `json:"overtime_minutes,omitempty" yaml:"overtime_minutes,omitempty"`
	NormDayMinutes  *int `json:"norm_day_minutes,omitempty" yaml:"norm_day_minutes,omitempty"`
}

type reportView struct {
	Month  string     `json:"month" yaml:"month"`
	Days   []dayView  `json:"days" yaml:"days"`
	Totals totalsView `json:"totals" yaml:"totals"`
}

func newReportView(m aggregate.Month) reportView {
	v := reportView{Month: m.Key, Days: make([]dayView, 0, len(m.Days))}
	for _, d := range m.Days {
		v.Days = append(v.Days, dayView{
			Date:         d.Date,
			WorkMinutes:  d.WorkNetMinutes,
			PauseMinutes: d.PauseMinutes,
			WorkShifts:   d.WorkCount,
			Types:        typeNames(d),
		})
	}
	t := m.Totals
	v.Totals = totalsView{
		WorkMinutes:    t.WorkNetMinutes,
		PauseMinutes:   t.WorkPauseMinutes,
		WorkShifts:     t.WorkShifts,
		RecupDays:      t.RecupDays,
		VacationDays:   t.VacationDays,
		SickDays:       t.SickDays,
		HolidayDays:    t.HolidayDays,
		NormDayMinutes: t.NormDayMinutes,
	}
	if t.NormDayMinutes != nil {
		overtime := t.OvertimeMinutes
		v.Totals.OvertimeMinutes = &overtime
	}
	return v
}

func typeNames(d aggregate.DayRow) []string {
	var names []string
	for _, t := range d.Types {
		if t != "" {
			names = append(names, string(t))
		}
	}
	return names
}

// writeReport renders m in the given format.
func writeReport(w io.Writer, m aggregate.Month, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		return writeCSV(w, m)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newReportView(m)); err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReportView(m)); err != nil {
			return fmt.Errorf("error encoding YAML: %w", err)
		}
		return enc.Close()
	case "md", "":
		return writeTable(w, m)
	}
	return fmt.Errorf("invalid format %q: must be md, csv, json or yaml", format)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	offDayStyle = cellStyle.Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	overtimeNeg = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	overtimePos = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func writeTable(w io.Writer, m aggregate.Month) error {
	rows := make([][]string, 0, len(m.Days))
	for _, d := range m.Days {
		rows = append(rows, []string{
			timecalc.DMY(d.Date),
			d.Hours(),
			timecalc.FormatPause(d.PauseMinutes),
			d.TypeLabel(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Date", "Hours", "Pause", "Type").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(m.Days) && m.Days[row].WorkCount == 0 {
				return offDayStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, titleStyle.Render("Month "+timecalc.MonthLabel(m.Key)))
	fmt.Fprintln(w, t.String())

	lines := layout.TotalsLines(m.Totals)
	for i, l := range lines[1:] {
		if i == len(lines)-2 && m.Totals.NormDayMinutes != nil {
			style := overtimePos
			if m.Totals.OvertimeMinutes < 0 {
				style = overtimeNeg
			}
			l = style.Render(l)
		}
		fmt.Fprintln(w, l)
	}
	return nil
}

func writeCSV(w io.Writer, m aggregate.Month) error {
	if _, err := fmt.Fprintln(w, "date,work_minutes,pause_minutes,work_shifts,types"); err != nil {
		return err
	}
	for _, d := range m.Days {
		if _, err := fmt.Fprintf(w, "%s,%d,%d,%d,%s\n",
			d.Date,
			d.WorkNetMinutes,
			d.PauseMinutes,
			d.WorkCount,
			csvEscape(strings.Join(typeNames(d), ", ")),
		); err != nil {
			return err
		}
	}
	return nil
}

// csvEscape quotes a field containing a comma, quote or line break, doubling
// any quotes inside it.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
