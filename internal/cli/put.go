package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/journal"
)

func newPutCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "put [file|-]",
		Short: "Store markdown as the entry for a date in the local backend.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			content, err := readContent(cmd, args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return errors.New("content is empty")
			}

			dst, closeStore, err := a.openWritable()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := dst.Put(ctx, date, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved entry for %s\n", journal.Key(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}

func readContent(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
