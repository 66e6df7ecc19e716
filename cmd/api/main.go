package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dailyrewards/internal/adapter/api"
	"dailyrewards/internal/adapter/api/handler"
	apimiddleware "dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/adapter/api/router"
	"dailyrewards/internal/adapter/repository"
	domainrepo "dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/internal/infrastructure/cache"
	"dailyrewards/internal/infrastructure/database"
	"dailyrewards/internal/infrastructure/firebase"
	"dailyrewards/internal/infrastructure/ratelimit"
	"dailyrewards/internal/infrastructure/scheduler"
	"dailyrewards/internal/infrastructure/websocket"
	"dailyrewards/internal/usecase"
	"dailyrewards/pkg/config"
	"dailyrewards/pkg/logger"
	"dailyrewards/pkg/response"
)

type repositories struct {
	users        domainrepo.UserRepository
	streaks      domainrepo.LoginStreakRepository
	levels       domainrepo.UserLevelRepository
	activities   domainrepo.DailyActivityRepository
	achievements domainrepo.AchievementRepository
	items        domainrepo.RewardItemRepository
	inventory    domainrepo.InventoryRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opt := firebase.ClientOption(cfg)

	authClient, err := firebase.NewAuth(ctx, cfg, opt)
	if err != nil {
		logger.Fatal("%v", err)
	}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL: %v", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("Failed to migrate database: %v", err)
		}
		repos = postgresRepositories(pool)

	default:
		firestoreClient, err := firebase.NewFirestore(ctx, cfg, opt)
		if err != nil {
			logger.Fatal("%v", err)
		}
		defer firestoreClient.Close()

		repos = repositories{
			users:        repository.NewFirestoreUserRepository(firestoreClient),
			streaks:      repository.NewFirestoreLoginStreakRepository(firestoreClient),
			levels:       repository.NewFirestoreUserLevelRepository(firestoreClient),
			activities:   repository.NewFirestoreDailyActivityRepository(firestoreClient),
			achievements: repository.NewFirestoreAchievementRepository(firestoreClient),
			items:        repository.NewFirestoreRewardItemRepository(firestoreClient),
			inventory:    repository.NewFirestoreInventoryRepository(firestoreClient),
		}
	}
	logger.Info("Using %s storage", cfg.StorageDriver)

	var rankingCache usecase.RankingCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Ranking cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			rankingCache = cache.NewRankingCache(redisClient, cfg.RankingCacheTTL)
		}
	}

	loc := cfg.Location()
	clock := usecase.Clock(time.Now)

	wsManager := websocket.NewManager(logger.New("websocket"))
	wsManager.Start(ctx)

	catalogUseCase := usecase.NewCatalogUseCase(repos.items, repos.achievements, clock, logger.New("catalog"))
	if err := catalogUseCase.EnsureDefaults(ctx); err != nil {
		logger.Fatal("Failed to seed catalogs: %v", err)
	}

	rng := service.DefaultSource()
	if cfg.RouletteSeed != 0 {
		logger.Warn("Roulette seeded with %d; spins are reproducible", cfg.RouletteSeed)
		rng = service.NewSeededSource(cfg.RouletteSeed)
	}

	userUseCase := usecase.NewUserUseCase(repos.users, clock)
	inventoryUseCase := usecase.NewInventoryUseCase(repos.inventory, repos.items, wsManager, clock, logger.New("inventory"))
	experienceService := usecase.NewExperienceService(repos.levels, inventoryUseCase, wsManager, clock, logger.New("experience"))
	statsCollector := usecase.NewStatsCollector(repos.streaks, repos.activities, repos.inventory, repos.items, repos.levels)
	achievementUseCase := usecase.NewAchievementUseCase(repos.achievements, statsCollector, experienceService, wsManager, clock, logger.New("achievements"))
	dailyLoginUseCase := usecase.NewDailyLoginUseCase(
		repos.streaks, repos.activities, experienceService, inventoryUseCase, achievementUseCase,
		wsManager, clock, loc, logger.New("daily-login"),
	)
	rouletteUseCase := usecase.NewRouletteUseCase(
		repos.activities, service.NewRewardRoller(rng, logger.New("roulette")), nil,
		experienceService, inventoryUseCase, achievementUseCase, wsManager, clock, loc, logger.New("roulette"),
	)
	miniGameUseCase := usecase.NewMiniGameUseCase(
		repos.activities, nil, experienceService, inventoryUseCase, achievementUseCase,
		wsManager, clock, loc, logger.New("mini-game"),
	)
	rankingUseCase := usecase.NewRankingUseCase(repos.users, repos.levels, repos.streaks, repos.activities, rankingCache, logger.New("rankings"))

	limiter := ratelimit.NewRateLimiter(nil, nil)

	var refresher scheduler.RankingRefresher
	if rankingCache != nil {
		refresher = rankingUseCase
	}
	jobs := scheduler.New(loc, scheduler.Specs{
		RankingRefresh:   cfg.RankingRefreshSpec,
		RateLimitCleanup: cfg.RateLimitCleanupSpec,
	}, refresher, limiter, logger.New("scheduler"))
	if err := jobs.Start(ctx); err != nil {
		logger.Fatal("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	handler.Setup(handler.Dependencies{
		Users:        userUseCase,
		DailyLogin:   dailyLoginUseCase,
		Roulette:     rouletteUseCase,
		MiniGame:     miniGameUseCase,
		Levels:       experienceService,
		Achievements: achievementUseCase,
		Inventory:    inventoryUseCase,
		Rankings:     rankingUseCase,
		WebSocket:    handler.NewWebSocketHandler(wsManager, cfg.WebSocketOrigins),
		Storage:      cfg.StorageDriver,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.ErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebase.NewFirebaseAuthClient(authClient))
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, rateLimitMiddleware)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:        repository.NewPostgresUserRepository(pool),
		streaks:      repository.NewPostgresLoginStreakRepository(pool),
		levels:       repository.NewPostgresUserLevelRepository(pool),
		activities:   repository.NewPostgresDailyActivityRepository(pool),
		achievements: repository.NewPostgresAchievementRepository(pool),
		items:        repository.NewPostgresRewardItemRepository(pool),
		inventory:    repository.NewPostgresInventoryRepository(pool),
	}
}
