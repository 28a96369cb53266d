package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/selection"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months that have entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState()
		if err != nil {
			return err
		}
		printMonths(cmd.OutOrStdout(), state.Entries)
		return nil
	},
}

// printMonths writes one line per month with data: key, label and entry
// count.
func printMonths(w io.Writer, entries []model.TimeEntry) {
	months := selection.Months(entries)
	if len(months) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for _, key := range months {
		n := len(selection.Filter(entries, selection.Request{Mode: selection.ModeMonth, Month: key}))
		fmt.Fprintf(w, "%s  %s  %d entries\n", key, timecalc.MonthLabel(key), n)
	}
}
