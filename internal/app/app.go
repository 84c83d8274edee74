package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/handler/http"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/logger"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/notification"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/postgres"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/prometheus"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/redis"
	"github.com/pedalkeep/bike_maintenance_service/internal/adapter/strava"
	"github.com/pedalkeep/bike_maintenance_service/internal/config"
	corecatalog "github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/detect"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
	Refresh      *services.RefreshService

	refreshCancel context.CancelFunc
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Connect DB
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database:%w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("Failed to ping database:%w", err)
	}

	// Migrate DB
	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		return nil, fmt.Errorf("Failed to run migrations:%w", err)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Static catalog tables
	catalogLoader := catalog.NewYAMLLoader(cfg.Catalog.Dir, loggerAdapter)
	catalogData, err := catalogLoader.LoadCatalogData()
	if err != nil {
		return nil, fmt.Errorf("Failed to load catalog data:%w", err)
	}
	presets := corecatalog.NewPresetCatalog(catalogData.Manufacturers, catalogData.TypeDefinitions, catalogData.FallbackBikes)
	parts := corecatalog.NewPartTemplateCatalog(catalogData.PartTemplates, catalogData.Categories)
	detector := detect.NewDetector(presets)

	// Repositories
	bikeRepo := postgres.NewBikeRepository(db)
	intervalRepo := postgres.NewIntervalRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	// Services
	bikeService := services.NewBikeService(bikeRepo, intervalRepo, rideRepo, detector, loggerAdapter, validate, cacheAdapter)
	intervalService := services.NewIntervalService(intervalRepo, historyRepo, rideRepo, parts, loggerAdapter, validate, cacheAdapter)

	// Ride source
	var rideSource ports.RideSource
	if cfg.Strava.ClientID != "" {
		rideSource = strava.NewClient(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.RefreshToken)
	}
	syncService := services.NewRideSyncService(rideSource, rideRepo, bikeRepo, loggerAdapter)

	// Notifications
	var notifier ports.NotificationPort
	if cfg.Notify.URL != "" {
		notifier, err = notification.NewShoutrrrAdapter(cfg.Notify.URL, loggerAdapter)
		if err != nil {
			return nil, fmt.Errorf("Failed to configure notifications:%w", err)
		}
	} else {
		notifier = notification.NewNoopAdapter(loggerAdapter)
	}

	refreshService := services.NewRefreshService(intervalRepo, rideRepo, syncService, notifier, parts, loggerAdapter, metrics)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, loggerAdapter)
	bikeHandler := http.NewBikeHandler(bikeService, intervalService, loggerAdapter, metrics)
	intervalHandler := http.NewIntervalHandler(intervalService, bikeService, loggerAdapter, metrics)
	detectionHandler := http.NewDetectionHandler(bikeService, parts, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		bikeHandler,
		intervalHandler,
		detectionHandler,
	)
	if err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
		Refresh:      refreshService,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	refreshCtx, cancel := context.WithCancel(context.Background())
	a.refreshCancel = cancel
	go a.Refresh.Run(refreshCtx, a.Config.Refresh.Interval())

	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if a.refreshCancel != nil {
		a.refreshCancel()
	}

	// Close database
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
