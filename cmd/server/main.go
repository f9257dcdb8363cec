package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhayashi/hskdrill/internal/api"
	"github.com/mhayashi/hskdrill/internal/config"
	"github.com/mhayashi/hskdrill/internal/db"
	"github.com/mhayashi/hskdrill/internal/logger"
	"github.com/mhayashi/hskdrill/internal/repository/sqlite"
	"github.com/mhayashi/hskdrill/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("HSK Drill Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("words_csv=%s", cfg.WordsCSV)
	log.Debug("audio_dir=%s", cfg.AudioDir)
	log.Debug("static_dir=%s", cfg.StaticDir)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)
	log.Debug("quiz_feedback_ms=%d", cfg.QuizFeedbackMS)
	log.Debug("default_word_count=%d", cfg.DefaultWordCount)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	wordRepo := sqlite.NewWordRepository(database)
	wordService := services.NewWordService(wordRepo)
	importService := services.NewImportService(wordRepo)

	if cfg.WordsCSV != "" {
		log.Info("importing words from %s", cfg.WordsCSV)
		n, err := importService.ImportCSV(context.Background(), cfg.WordsCSV)
		if err != nil {
			log.Error("word import failed: %v", err)
			os.Exit(1)
		}
		log.Info("imported %d words", n)
	}

	registry := services.NewSessionRegistry(
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		cfg.AudioDir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	registry.StartSweeper(ctx, 5*time.Minute)

	srv := &api.Server{
		WordService:      wordService,
		Sessions:         registry,
		StaticDir:        cfg.StaticDir,
		AudioDir:         cfg.AudioDir,
		QuizFeedbackMS:   cfg.QuizFeedbackMS,
		DefaultWordCount: cfg.DefaultWordCount,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping session sweeper")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("HSK Drill Server Stopped")
	log.Info("===========================================")
}
