package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todo-sync/internal/config"
	"todo-sync/internal/fakeapi"
	"todo-sync/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		addr     string
		users    []string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Serve an in-memory copy of the playground to-do API",
		Long: `Serve an in-memory copy of the playground to-do API.

The API is mounted under /todo, so point the client at it with:
  TODO_API_BASE_URL=http://localhost:8080/todo todo users`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(config.LoggingConfig{Level: logLevel, Format: "text"}, cmd.ErrOrStderr())

			api := fakeapi.New()
			for _, name := range users {
				api.AddUser(name)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr, "base", fakeapi.BasePath, "users", len(users))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", "err", err)
					return err
				}
				return nil
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringSliceVar(&users, "user", nil, "User to create at startup (repeatable)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}
