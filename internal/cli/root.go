package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/files"
	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/ui"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	return newRootCommand(ctx, newApp(manager))
}

func newRootCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		darkFlag bool
	)

	cmd := &cobra.Command{
		Use:   "gideon",
		Short: "Browse a date-indexed journal from your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if err := a.manager.EnsureBase(); err != nil {
				return err
			}

			log, err := a.logger(true)
			if err != nil {
				return err
			}
			defer log.Close()

			src, closeSource, err := a.openSource(log)
			if err != nil {
				return err
			}
			defer closeSource()

			mode := ui.ParseMode(cfg.Theme)
			if darkFlag {
				mode = ui.ModeDark
			}

			log.Infow("tui_started", "backend", cfg.Backend, "date", journal.Key(start))
			m := ui.NewModel(ctx, ui.Options{
				Source:       src,
				Log:          log,
				Clipboard:    a.clipboard,
				Renderer:     a.renderer,
				Start:        start,
				Mode:         mode,
				FetchTimeout: cfg.Supabase.Timeout,
			})
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Initial date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&darkFlag, "dark", false, "Start in dark mode (default: theme from config)")

	cmd.AddCommand(
		newTodayCommand(ctx, a),
		newPrevCommand(ctx, a),
		newNextCommand(ctx, a),
		newJumpCommand(ctx, a),
		newWindowCommand(ctx, a),
		newListCommand(ctx, a),
		newCopyCommand(ctx, a),
		newPutCommand(ctx, a),
		newServeCommand(ctx, a),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, manager)
	return cmd.Execute()
}

// Main is a helper used by cmd/gideon/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

