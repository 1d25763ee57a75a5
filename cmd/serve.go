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

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/audio"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/cache"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/config"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/logging"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/server"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/study"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/trivia"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP study server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	registerServeFlags(serveCmd)
}

func registerServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("cache", "", "SQLite cache path (empty = in-memory only)")
	f.String("llm-provider", "", "Model provider (gemini, openai, anthropic, openrouter)")
	f.String("llm-model", "", "Text model override")
	f.String("tts-model", "", "Speech model override")
	f.Duration("llm-timeout", 0, "Per-request model timeout")
	f.String("google-api-key", "", "Google API key (text + speech + search fallback)")
	f.String("llm-api-key", "", "Text model API key (overrides google-api-key)")
	f.String("tts-api-key", "", "Speech model API key (overrides google-api-key)")
	f.String("news-api-key", "", "News search API key")
	f.String("youtube-api-key", "", "Video search API key")
	f.String("books-api-key", "", "Book search API key")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "console", "Log format (console, json)")
}

func runServe(cmd *cobra.Command) error {
	v := viperForCmd(cmd)
	cfg := config.FromViper(v)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	for _, warning := range cfg.Credentials.Warnings() {
		logger.Warn(warning)
	}

	var store cache.Store = cache.NewMemory()
	if cfg.CachePath != "" {
		sqlStore, err := cache.OpenSQLite(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		store = cache.NewTiered(sqlStore)
		logger.Info("persistent cache enabled", zap.String("path", cfg.CachePath))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := llm.NewFactory(cfg.LLM, logger)
	defer factory.Close()

	text, err := factory.Text(ctx)
	if err != nil {
		return fmt.Errorf("create text provider: %w", err)
	}
	speech, err := factory.Speech(ctx)
	if err != nil {
		// Audio requests degrade to text-only without a speech provider.
		logger.Warn("speech synthesis disabled", zap.Error(err))
	}

	contentSvc := content.NewService(text, logger, content.DefaultConfig())
	pipeline := audio.NewPipeline(contentSvc, speech, logger)

	sessions := study.NewManager(contentSvc, store, logger)
	defer sessions.Close()

	triviaClient := trivia.NewClient(trivia.Keys{
		News:    cfg.Trivia.NewsAPIKey,
		Books:   cfg.Trivia.BooksAPIKey,
		YouTube: cfg.Trivia.YouTubeAPIKey,
	}, logger, trivia.WithHTTPClient(&http.Client{Timeout: cfg.Trivia.Timeout}))

	h := server.New(contentSvc, pipeline, sessions, triviaClient, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("provider", cfg.LLM.Provider),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
