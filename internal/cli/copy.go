package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/journal"
)

func newCopyCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy an entry's markdown to the clipboard.",
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

			entry, found, err := journal.Lookup(ctx, src, date)
			if err != nil {
				return err
			}
			if !found {
				return errors.New(journal.AbsentMessage(date))
			}
			if err := a.clipboard.WriteAll(entry.Content); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied entry for %s\n", journal.Key(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
