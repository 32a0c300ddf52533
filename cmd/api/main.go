package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/boardroomai/meeting-analyzer/pkg/validator"

	"github.com/boardroomai/meeting-analyzer/internal/adapter/handler"
	"github.com/boardroomai/meeting-analyzer/internal/adapter/repository"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/cache"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/database"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/diarize"
	httpmw "github.com/boardroomai/meeting-analyzer/internal/infrastructure/http/middleware"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/notify"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/storage"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/stt"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/analysis"
	meetingUsecase "github.com/boardroomai/meeting-analyzer/internal/usecase/meeting"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/orchestration"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/transcription"
	pkgai "github.com/boardroomai/meeting-analyzer/pkg/ai"
	"github.com/boardroomai/meeting-analyzer/pkg/config"
	"github.com/boardroomai/meeting-analyzer/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if cfg.Server.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Meeting store: Postgres when enabled, otherwise in-process memory
	var meetingRepo repositories.MeetingRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, dbErr := database.NewPostgresDB(cfg)
		if dbErr != nil {
			log.Fatalf("Failed to connect to database: %v", dbErr)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run scripts/migrate.go instead.")
			}
			log.Println("🔄 Applying pending migrations...")
			if migrateErr := database.AutoMigrate(db); migrateErr != nil {
				log.Fatalf("Failed to run migrations: %v", migrateErr)
			}
		}
		meetingRepo = repository.NewMeetingRepository(db)
	} else {
		log.Println("📦 Using in-memory meeting store")
		meetingRepo = repository.NewMemoryMeetingRepository()
	}

	// Answer cache: Redis when enabled, otherwise in-process TTL store
	var qaStore cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, redisErr := cache.NewRedisClient(cfg)
		if redisErr != nil {
			log.Fatalf("Failed to connect to Redis: %v", redisErr)
		}
		defer redisClient.Close()
		qaStore = cache.NewRedisStore(redisClient)
	} else {
		qaStore = cache.NewMemoryStore()
	}

	// Object storage for raw audio archival (optional)
	var archive meetingUsecase.Archiver
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		minioClient, minioErr := storage.NewMinIOClient(&cfg.Storage)
		if minioErr != nil {
			log.Fatalf("Failed to connect to object storage: %v", minioErr)
		}
		archive = minioClient
	}

	// Speech-to-text engine
	var engine stt.Engine
	switch cfg.STT.Engine {
	case "assemblyai":
		log.Println("🎙️  Using AssemblyAI transcription")
		engine = stt.NewAssemblyAIEngine(cfg.STT.AssemblyAIKey, cfg.STT.PollInterval, cfg.STT.Timeout, logger)
	default:
		log.Println("🎙️  Using stub transcription engine")
		engine = stt.NewStubEngine()
	}

	// LLM client and analysis components. The structured chat chain is
	// only available with the local Ollama backend; Groq always takes the
	// flat-prompt path.
	log.Println("🤖 Initializing AI components...")
	var llm orchestration.LLMClient
	var chain orchestration.ChainInvoker
	switch cfg.LLM.Provider {
	case "groq":
		log.Println("🤖 Using Groq text generation")
		llm = pkgai.NewGroqClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.Timeout)
	default:
		ollama := pkgai.NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.Timeout)
		llm = ollama
		chain = pkgai.NewChain(ollama)
	}
	sentiment := analysis.NewSentimentTracker(llm, logger)
	decisions := analysis.NewDecisionExtractor(llm, logger)
	actionItems := analysis.NewActionItemExtractor(llm, logger)
	summarizer := analysis.NewSummarizer(llm, logger)

	// Analysis-completed webhook (optional)
	var notifier orchestration.EventNotifier = notify.NopNotifier{}
	if cfg.Webhook.URL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Secret, cfg.Webhook.Timeout, logger)
	}

	orch := orchestration.New(orchestration.Collaborators{
		Transcriber: engine,
		Sentiment:   sentiment,
		Decisions:   decisions,
		ActionItems: actionItems,
		Summarizer:  summarizer,
		LLM:         llm,
		Chain:       chain,
		Notifier:    notifier,
	}, qaStore, orchestration.Options{
		Workers:     cfg.Orchestration.Workers,
		LLMTimeout:  cfg.Orchestration.TaskTimeout,
		QACacheTTL:  cfg.Orchestration.CacheTTL,
		TopicChunks: cfg.Orchestration.MaxTopicChunks,
	}, logger)

	diarizer := diarize.NewDiarizer()

	// Background transcription worker
	worker := transcription.NewWorker(engine, sentiment, meetingRepo, cfg.Orchestration.Workers, logger)
	worker.Start()

	log.Println("⚙️  Initializing meeting service...")
	meetingService := meetingUsecase.NewMeetingService(
		meetingRepo,
		orch,
		diarizer,
		archive,
		worker,
		cfg.Orchestration.MinDuration,
		logger,
	)

	// Optional bearer-token guard
	var auth *httpmw.AuthMiddleware
	if cfg.JWT.Enabled {
		log.Println("🔑 Token authentication enabled")
		auth = httpmw.NewAuthMiddleware(jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry), true)
	}

	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	queryHandler := handler.NewQueryHandler(meetingService, logger)
	voiceHandler := handler.NewVoiceHandler(meetingService, logger)

	router := handler.NewRouter(cfg, meetingHandler, queryHandler, voiceHandler, auth)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	worker.Stop(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
