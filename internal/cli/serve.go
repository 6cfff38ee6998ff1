package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/faizmokh/gideon/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(ctx context.Context, a *app) *cobra.Command {
	var portFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local backend over the hosted query API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if portFlag == "" {
				portFlag = cfg.Server.Port
			}

			log, err := a.logger(false)
			if err != nil {
				return err
			}
			defer log.Close()

			src, closeSource, err := a.openWritable()
			if err != nil {
				return err
			}
			defer closeSource()

			gin.SetMode(gin.ReleaseMode)
			handler := server.NewHandler(server.Options{
				Source:     src,
				Log:        log,
				Table:      cfg.Supabase.Table,
				DateColumn: cfg.Supabase.DateColumn,
				Key:        cfg.Server.Key,
			})

			runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(portFlag, handler.InitRoutes())
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Run()
			}()
			log.Infow("server_started", "port", portFlag, "backend", cfg.Backend)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s backend on %s\n", cfg.Backend, portFlag)

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("shutdown server: %w", err)
			}
			log.Infow("server_stopped")
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (default: server.port)")

	return cmd
}
