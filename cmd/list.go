package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/selection"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

var listMonth string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of a month",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listMonth, "month", "", "Month as YYYY-MM (default: latest month with entries)")
}

func runList(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}

	key := listMonth
	if key == "" {
		key = latestMonth(state.Entries)
	} else if _, _, err := timecalc.ParseMonthKey(key); err != nil {
		return err
	}

	entries := selection.Filter(state.Entries, selection.Request{Mode: selection.ModeMonth, Month: key})
	aggregate.SortEntries(entries)
	printList(cmd.OutOrStdout(), entries)
	return nil
}

// printList groups entries by date and prints one line per entry.
func printList(w io.Writer, entries []model.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		if e.Date != currentDay {
			fmt.Fprintln(w, timecalc.DMY(e.Date))
			currentDay = e.Date
		}

		span := ""
		if e.Start != "" || e.End != "" {
			span = fmt.Sprintf("%s–%s  ", e.Start, e.End)
		}
		typ := string(e.Type)
		if typ == "" {
			typ = "-"
		}
		net := ""
		if e.NetMinutes > 0 || e.Type.IsWork() {
			net = " (" + timecalc.FormatHM(e.NetMinutes) + ")"
		}
		note := ""
		if e.Note != "" {
			note = "  " + e.Note
		}

		fmt.Fprintf(w, "  %s%s%s%s\n", span, typ, net, note)
	}
}
