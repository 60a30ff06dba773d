package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/api/handlers"
	"github.com/reporthub/reporthub-api/api/scheduler"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server",
	Long: `Starts the HTTP server. Usage:

	reporthub-api serve
`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}
	defer zap.S().Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := handlers.App{Config: *conf}
	if err := a.Initialize(ctx); err != nil { //initialize database and router
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
		defer cancel()
		if err := a.Client.Disconnect(dctx); err != nil {
			zap.S().Errorw("failed to disconnect from database", "error", err)
		}
	}()

	if conf.ReminderSchedule != "" {
		s := scheduler.NewScheduler(databases.NewReportDatabase(a.Database()), a.Notifier, conf.ReminderStaleAfter)
		if err := s.Start(conf.ReminderSchedule); err != nil {
			return fmt.Errorf("start reminder scheduler: %w", err)
		}
		defer s.Stop()
	}

	handler := api.CORS(conf.AllowedOrigins)(api.TimeoutMiddleware(conf.RequestTimeout)(a.Router))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", conf.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("reporthub-api is up and running",
			"port", conf.Port,
			"url", conf.BaseURL,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
