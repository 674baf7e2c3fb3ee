package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"companion-llm/internal/config"
	"companion-llm/internal/db"
	apihttp "companion-llm/internal/http"
	"companion-llm/internal/llm"
	"companion-llm/internal/repository"
	"companion-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	backend, err := llm.New(llm.Options{
		Provider:  cfg.LLMProvider,
		Model:     cfg.LLMModel,
		Binary:    cfg.OllamaBinary,
		OllamaURL: cfg.OllamaBaseURL,
		BaseURL:   cfg.LLMBaseURL,
		APIKey:    cfg.LLMAPIKey,
		Timeout:   cfg.LLMTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("llm backend", zap.Error(err))
	}
	checkModel(ctx, logger, backend)

	var (
		gameCache   service.GameContentCache
		chatLimiter = service.NewMemoryRateLimiter(cfg.ChatRateWindow, cfg.ChatRateLimit)
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			chatLimiter = service.NewRedisRateLimiter(redisClient, cfg.ChatRateWindow, cfg.ChatRateLimit)
			gameCache = service.NewRedisGameCache(redisClient, cfg.GameCacheTTL)
		}
		cancel()
	}

	reportStore, err := repository.NewFileChatReportStore(cfg.ReportsDir)
	if err != nil {
		logger.Fatal("report store", zap.Error(err))
	}

	var (
		reportArchive   service.ChatReportStore
		reportReader    apihttp.ChatReportReader
		analysisArchive service.JournalAnalysisArchive
		analysisReader  apihttp.JournalAnalysisReader
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		analyses := repository.NewPgJournalAnalysisRepository(pool)
		reports := repository.NewPgChatReportRepository(pool)
		reportArchive = reports
		reportReader = reports
		analysisArchive = analyses
		analysisReader = analyses
	} else {
		logger.Warn("database not configured, analyses will not be archived")
	}

	verifier := service.NewTokenVerifier(cfg.JWTSecret, "")
	if verifier == nil {
		logger.Warn("jwt secret not configured, api is unauthenticated")
	}

	chatSvc := service.NewChatService(logger, backend, service.ChatOptions{
		HistoryTurns:      cfg.ChatHistoryTurns,
		SecondaryPersonas: cfg.ChatSecondaryPersonas,
	})
	reportSvc := service.NewChatReportService(logger, backend, reportStore, reportArchive)
	journalSvc := service.NewJournalService(logger, backend, analysisArchive)
	combinedSvc := service.NewCombinedAnalysisService(logger, backend)
	gameSvc := service.NewGameService(logger, backend, gameCache)
	statusSvc := service.NewStatusService(backend, "production")

	router := apihttp.NewRouter(logger, apihttp.RouterConfig{
		Chat:           apihttp.NewChatHandler(logger, chatSvc, reportSvc, reportStore, reportReader),
		Journal:        apihttp.NewJournalHandler(logger, journalSvc, combinedSvc, analysisReader),
		Games:          apihttp.NewGameHandler(logger, gameSvc),
		System:         apihttp.NewSystemHandler(logger, statusSvc),
		Verifier:       verifier,
		ChatLimiter:    chatLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", backend.Model()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// checkModel solo advierte: el servidor arranca aunque el modelo no responda.
func checkModel(ctx context.Context, logger *zap.Logger, backend llm.Backend) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	models, err := backend.ListModels(ctx)
	if err != nil {
		logger.Warn("model backend not reachable", zap.String("endpoint", backend.Endpoint()), zap.Error(err))
		return
	}
	logger.Info("model backend reachable", zap.Strings("models", models))
}
