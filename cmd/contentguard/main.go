package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/config"
	handlers "github.com/sportsfeed/contentguard/pkg/handlers/http"
	wsHandlers "github.com/sportsfeed/contentguard/pkg/handlers/websocket"
	"github.com/sportsfeed/contentguard/pkg/infra/auditlogs"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/subscriber"
	"github.com/sportsfeed/contentguard/pkg/infra/database"
	"github.com/sportsfeed/contentguard/pkg/infra/httpx"
	"github.com/sportsfeed/contentguard/pkg/infra/jwt"
	infraLogger "github.com/sportsfeed/contentguard/pkg/infra/logger"
	_ "github.com/sportsfeed/contentguard/pkg/infra/migrations"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	"github.com/sportsfeed/contentguard/pkg/infra/ratelimit"
	"github.com/sportsfeed/contentguard/pkg/infra/repository"
	"github.com/sportsfeed/contentguard/pkg/infra/worker"
	infraws "github.com/sportsfeed/contentguard/pkg/infra/websocket"
	"github.com/sportsfeed/contentguard/pkg/middleware"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/sportsfeed/contentguard/pkg/server"
	"github.com/sportsfeed/contentguard/pkg/server/router"
	"golang.org/x/sync/errgroup"
)

const (
	serverTypeAPI   = "api"
	serverTypeAdmin = "admin"
)

// @title ContentGuard API
// @version 1.0
// @description Content moderation for the sports feed: classification, post triggers and the review queue.
// @BasePath /
func main() {
	serverType := getServerType()
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, flushLogs, err := infraLogger.NewLogger(serverType)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer flushLogs()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:    cfg.Metrics.EnableLatency,
		EnableRiskScore:  cfg.Metrics.EnableRiskScore,
		EnableViolations: cfg.Metrics.EnableViolations,
	})

	// rules
	loadRules := func() (*modcore.Classifier, error) {
		ruleConfig, err := modcore.LoadRuleConfig(cfg.Moderation.RulesFile)
		if err != nil {
			return nil, err
		}
		return modcore.NewClassifier(logger, ruleConfig)
	}
	classifierCore, err := loadRules()
	if err != nil {
		logger.Fatalf("failed to load moderation rules: %v", err)
	}
	activeRules := appmod.NewActiveRules(classifierCore)

	// storage
	db, err := database.NewDB(logger, &database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("failed to close database")
		}
	}()

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}

	// audit trail
	auditService := newAuditService(cfg, logger)
	defer func() { _ = auditService.Close() }()

	// repositories
	postRepository := repository.NewPostRepository(db.DB)
	reportRepository := repository.NewReportRepository(db.DB)
	modlogRepository := repository.NewModerationLogRepository(db.DB)

	// background log writes
	logWorker := worker.NewWorker(logger, cfg.Moderation.LogQueueSize)
	logWorker.StartWorkers(cfg.Moderation.LogWorkers)
	defer logWorker.Shutdown()

	logBreaker := httpx.NewCircuitBreaker(
		"moderation_log_writes",
		cfg.Moderation.BreakerTimeout,
		cfg.Moderation.BreakerMaxFailures,
		logger,
	)
	recorder := appmod.NewLogRecorder(logger, modlogRepository, logWorker, logBreaker, cfg.Moderation.LogWriteTimeout)

	// services
	publisher := cache.NewRedisEventPublisher(cacheClient, cache.ModerationChannel)
	classifier := appmod.NewObservedClassifier(activeRules)
	checker := appmod.NewContentChecker(logger, classifier, recorder, toLanguages(cfg.Moderation.DefaultLanguages))
	moderator := appmod.NewPostModerator(
		logger,
		classifier,
		postRepository,
		reportRepository,
		cacheClient,
		publisher,
		auditService,
		recorder,
		cfg.Moderation.DeliveryTTL,
	)
	reviewer := appmod.NewReportReviewer(logger, reportRepository, modlogRepository, publisher, auditService)
	reloader := appmod.NewRulesReloader(logger, activeRules, loadRules, publisher, auditService, uuid.NewString())

	// rule reload fan-out
	listener := cache.NewRedisEventListener(logger, cacheClient)
	cache.RegisterEventSubscriber[event.RulesReloadedEvent](
		listener,
		subscriber.NewRulesReloadedSubscriber(logger, reloader),
	)

	// rate limiting
	var apiLimiter, chatLimiter ratelimit.Limiter
	if rl := cfg.RateLimit; rl.Enabled {
		if rl.APILimit > 0 {
			apiLimiter = ratelimit.NewSlidingWindowLimiter(cacheClient, "api", rl.APILimit, rl.APIWindow, nil)
		}
		if rl.ChatLimit > 0 {
			chatLimiter = ratelimit.NewSlidingWindowLimiter(cacheClient, "chat", rl.ChatLimit, rl.ChatWindow, nil)
		}
	}

	// middleware
	jwtManager := jwt.NewJwtManager(&cfg.Server)
	middlewareTransport := &middleware.Transport{
		AdminAuthMiddleware:     middleware.NewAdminAuthMiddleware(logger, jwtManager),
		RequestLoggerMiddleware: middleware.NewRequestLoggerMiddleware(logger),
		PanicRecoverMiddleware:  middleware.NewPanicRecoverMiddleware(logger),
		WebsocketMiddleware: middleware.NewWebsocketMiddleware(
			logger,
			infraws.NewSemaphore(cfg.WebSocket.MaxConnections),
		),
	}
	if apiLimiter != nil {
		middlewareTransport.RateLimitMiddleware = middleware.NewRateLimitMiddleware(logger, apiLimiter, "api")
	}

	// handlers
	pingers := map[string]handlers.Pinger{
		"database": db,
		"redis":    cacheClient,
	}
	handlerTransport := &handlers.HandlerTransport{
		ClassifyHandler:     handlers.NewClassifyHandler(logger, classifier),
		CheckContentHandler: handlers.NewCheckContentHandler(logger, checker),
		PostCreatedHandler:  handlers.NewPostCreatedHandler(logger, moderator, cfg.Server.MaxBodySize),
		HealthHandler:       handlers.NewHealthHandler(logger, pingers),
		GetVersionHandler:   handlers.NewGetVersionHandler(logger),

		ListReportsHandler:        handlers.NewListReportsHandler(logger, reviewer),
		GetReportHandler:          handlers.NewGetReportHandler(logger, reviewer),
		ResolveReportHandler:      handlers.NewResolveReportHandler(logger, reviewer),
		ListModerationLogsHandler: handlers.NewListModerationLogsHandler(logger, reviewer),
		GetRulesHandler:           handlers.NewGetRulesHandler(logger, activeRules),
		ReloadRulesHandler:        handlers.NewReloadRulesHandler(logger, reloader),
	}
	wsHandlerTransport := &wsHandlers.HandlerTransport{
		ChatHandler: wsHandlers.NewChatHandler(logger, checker, cfg.WebSocket, chatLimiter),
	}

	srv := initializeServer(serverType, cfg, logger, middlewareTransport, handlerTransport, wsHandlerTransport)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listener.Listen(gctx, cache.ModerationChannel)
		return nil
	})
	if serverType == serverTypeAdmin && cfg.Moderation.WatchRulesFile && cfg.Moderation.RulesFile != "" {
		watcher := appmod.NewRulesWatcher(logger, reloader, cfg.Moderation.RulesFile, cfg.Moderation.RulesWatchDebounce)
		g.Go(func() error {
			if err := watcher.Watch(gctx); err != nil {
				logger.WithError(err).Error("rules file watcher stopped")
			}
			return nil
		})
	}
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}

func newAuditService(cfg *config.Config, logger *logrus.Logger) auditlogs.Service {
	kafkaConfig, err := auditlogs.DecodeConfig(cfg.Kafka)
	if err != nil {
		logger.Fatalf("failed to decode kafka config: %v", err)
	}
	if !kafkaConfig.Enabled {
		logger.Info("audit log sink disabled")
		return auditlogs.NewService(nil, logger, false)
	}
	sink, err := auditlogs.NewKafkaSink(kafkaConfig)
	if err != nil {
		logger.Fatalf("failed to initialize kafka audit sink: %v", err)
	}
	return auditlogs.NewService(sink, logger, true)
}

func toLanguages(values []string) []modcore.Language {
	if len(values) == 0 {
		return nil
	}
	out := make([]modcore.Language, 0, len(values))
	for _, v := range values {
		out = append(out, modcore.Language(v))
	}
	return out
}

func getServerType() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return serverTypeAPI
}

func initializeServer(
	serverType string,
	cfg *config.Config,
	logger *logrus.Logger,
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
	wsHandlerTransport *wsHandlers.HandlerTransport,
) server.Server {
	switch serverType {
	case serverTypeAdmin:
		return server.NewAdminServer(server.AdminServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{router.NewAdminRouter(middlewareTransport, handlerTransport)},
		})
	default:
		return server.NewAPIServer(server.APIServerDI{
			Config: cfg,
			Logger: logger,
			Routers: []router.ServerRouter{
				router.NewAPIRouter(middlewareTransport, handlerTransport, wsHandlerTransport, cfg),
			},
		})
	}
}
