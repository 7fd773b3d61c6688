package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mockinterview/interviewer/internal/api"
	"github.com/mockinterview/interviewer/internal/store"

	_ "github.com/mockinterview/interviewer/docs" // generated swagger docs
)

// sweepInterval is how often idle sessions are looked for.
const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interviews over HTTP",
	Long: `Starts the HTTP API on SERVER_ADDRESS. Sessions live in memory and are
dropped after SESSION_TTL without activity. Swagger UI is served at /swagger/.`,
	RunE: serve,
}

// @title           Excel Mock Interviewer API
// @version         1.0
// @description     Adaptive Excel mock interviews: generated questions, scored answers and a written report.

// @host      localhost:8080
// @BasePath  /

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.close(shutdownCtx); err != nil {
			a.logger.Error("failed to flush telemetry", "error", err)
		}
	}()
	logger := a.logger

	sessions := store.NewMemoryStore()
	sessions.StartSweeper(ctx, sweepInterval, a.cfg.SessionTTL, func(removed int) {
		logger.Info("dropped idle sessions", "count", removed)
	})

	handler := api.NewHandler(a.interviews, sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              a.cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Answers wait on two generation calls, each retried.
		WriteTimeout: time.Duration(2*a.cfg.LLM.Retry.Attempts())*(a.cfg.LLM.Timeout+a.cfg.LLM.Retry.Delay) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", a.cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		return err
	}
	return nil
}
