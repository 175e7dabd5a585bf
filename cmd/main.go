// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/handlers"
	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/repository"
	"go_5_flashcard_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	// 開発環境ではtintのカラー出力、それ以外はJSONログ
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	log.Println("Log Config Loaded...")

	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Dependency Injection
	cardRepo := repository.NewFileCardRepository(config.Cfg.Data.Dir)
	categoryRepo := repository.NewFileCategoryRepository(config.Cfg.Data.Dir, config.Cfg.Data.LegacyFile)

	cardService := service.NewCardService(cardRepo)
	categoryService := service.NewCategoryService(categoryRepo, cardRepo)
	generatorService := service.NewGeneratorService(cardRepo, &config.Cfg)
	reviewService := service.NewReviewService(cardRepo, &config.Cfg, nil)

	cardHandler := handlers.NewCardHandler(cardService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	generateHandler := handlers.NewGenerateHandler(generatorService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)

	// 3. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetCategories)
			r.Post("/", categoryHandler.PostCategory)
			r.Post("/migrate", categoryHandler.PostMigrate)

			r.Route("/{category}", func(r chi.Router) {
				r.Route("/cards", func(r chi.Router) {
					r.Post("/", cardHandler.PostCard)
					r.Get("/", cardHandler.GetCards)
					r.Get("/{card_id}", cardHandler.GetCard)
					r.Patch("/{card_id}", cardHandler.PatchCard)
					r.Delete("/{card_id}", cardHandler.DeleteCard)
					r.Post("/{card_id}/duplicate", cardHandler.DuplicateCard)
				})

				r.Post("/generate", generateHandler.PostGenerate)

				r.Route("/review", func(r chi.Router) {
					r.Get("/next", reviewHandler.GetNextCard)
					r.Post("/{card_id}/grade", reviewHandler.PostGrade)
				})

				r.Post("/import", cardHandler.ImportCards)
				r.Get("/export", cardHandler.ExportCards)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		// データディレクトリに書き込めるかだけ確認する
		if err := os.MkdirAll(config.Cfg.Data.Dir, 0o755); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: data dir not writable", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 4. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
