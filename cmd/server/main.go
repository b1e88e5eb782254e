package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/arcadeprep/backend/internal/api"
	"github.com/arcadeprep/backend/internal/bankfile"
	"github.com/arcadeprep/backend/internal/infrastructure/config"
	"github.com/arcadeprep/backend/internal/metrics"
	"github.com/arcadeprep/backend/internal/service"
	"github.com/arcadeprep/backend/internal/store"

	_ "github.com/arcadeprep/backend/docs" // generated swagger docs
)

// @title           ArcadePrep API
// @version         1.0
// @description     Exam practice backend — randomized question sessions with answer tracking and progress analytics.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seedQuestionBank(db, cfg.SeedFile, logger); err != nil {
		logger.Error("failed to seed question bank", "error", err)
		os.Exit(1)
	}

	sessions := service.NewSessionService(db, logger)
	handler := api.NewHandler(db, sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → Instrument → mux ─────────
	logged := api.Logging(logger)(api.CORS(api.Instrument(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// seedQuestionBank loads the TOML bank into an empty database. A populated
// database is left untouched so restarts don't duplicate questions.
func seedQuestionBank(db *store.SQLiteStore, path string, logger *slog.Logger) error {
	count, err := db.CountQuestions()
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("question bank already seeded", "questions", count)
		return nil
	}

	questions, err := bankfile.Load(path)
	if err != nil {
		return err
	}
	if err := db.SaveQuestions(questions); err != nil {
		return err
	}
	logger.Info("seeded question bank", "file", path, "questions", len(questions))
	return nil
}
