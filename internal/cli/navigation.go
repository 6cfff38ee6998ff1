package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/journal"
)

func newPrevCommand(ctx context.Context, a *app) *cobra.Command {
	return newStepCommand(ctx, a, "prev", "Show the previous day's entry.", -1)
}

func newNextCommand(ctx context.Context, a *app) *cobra.Command {
	return newStepCommand(ctx, a, "next", "Show the next day's entry.", 1)
}

func newStepCommand(ctx context.Context, a *app, use, short string, days int) *cobra.Command {
	var (
		dateFlag string
		rawFlag  bool
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			return a.displayEntry(ctx, cmd, journal.Step(date, days), rawFlag)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the stored markdown without rendering")

	return cmd
}

func newJumpCommand(ctx context.Context, a *app) *cobra.Command {
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "jump <date>",
		Short: "Show the entry for the specified date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := journal.ParseKey(args[0])
			if err != nil {
				return err
			}
			return a.displayEntry(ctx, cmd, target, rawFlag)
		},
	}

	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the stored markdown without rendering")

	return cmd
}

func newWindowCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the five days around a date and which have entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			log, err := a.logger(false)
			if err != nil {
				return err
			}
			defer log.Close()

			src, closeSource, err := a.openSource(log)
			if err != nil {
				return err
			}
			defer closeSource()

			out := cmd.OutOrStdout()
			bold := newColor(out, color.Bold)
			present := newColor(out, color.FgGreen)
			faint := newColor(out, color.Faint)

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("#"), bold.Sprint("Date"), bold.Sprint("Day"), bold.Sprint("Entry"))
			for i, day := range journal.Window(date) {
				_, found, err := journal.Lookup(ctx, src, day)
				if err != nil {
					log.Errorw("fetch_entry_failed", "date", journal.Key(day), "err", err)
				}
				mark := faint.Sprint(journal.AbsentGlyph)
				if found {
					mark = present.Sprint("yes")
				}
				slot := strconv.Itoa(i + 1)
				if i == journal.WindowRadius {
					slot = bold.Sprint(slot + "*")
				}
				tbl.AddRow(slot, journal.Key(day), day.Format("Mon"), mark)
			}
			tbl.RightAlign(0)

			fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Center date in YYYY-MM-DD (default: today)")

	return cmd
}

func newListCommand(ctx context.Context, a *app) *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the dates stored in the local backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := a.openWritable()
			if err != nil {
				return err
			}
			defer closeSource()

			dates, err := src.Dates(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				keys := make([]string, 0, len(dates))
				for _, d := range dates {
					keys = append(keys, journal.Key(d))
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(keys)
			}

			if len(dates) == 0 {
				fmt.Fprintln(out, "(no entries)")
				return nil
			}
			for _, d := range dates {
				fmt.Fprintf(out, "%s  %s\n", journal.Key(d), d.Format("Monday"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit dates as a JSON array")

	return cmd
}
