package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newTodayCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		rawFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the entry for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			return a.displayEntry(ctx, cmd, targetDate, rawFlag)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the stored markdown without rendering")

	return cmd
}
