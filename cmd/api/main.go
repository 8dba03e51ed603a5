package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/papermart/listing-service/config"
	"github.com/papermart/listing-service/pkg/broker"
	"github.com/papermart/listing-service/pkg/cache"
	"github.com/papermart/listing-service/pkg/logger"
	"github.com/papermart/listing-service/pkg/postgres"
	essearch "github.com/papermart/listing-service/pkg/search"

	hierH "github.com/papermart/listing-service/internal/hierarchy/handler"
	hierRepoPkg "github.com/papermart/listing-service/internal/hierarchy/repository"
	hierUCPkg "github.com/papermart/listing-service/internal/hierarchy/usecase"

	listH "github.com/papermart/listing-service/internal/listing/handler"
	listListenerPkg "github.com/papermart/listing-service/internal/listing/listener"
	listRepoPkg "github.com/papermart/listing-service/internal/listing/repository"
	listUCPkg "github.com/papermart/listing-service/internal/listing/usecase"

	"github.com/papermart/listing-service/internal/search"
	"github.com/papermart/listing-service/internal/search/elastic"
	searchH "github.com/papermart/listing-service/internal/search/handler"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	hierRepo := hierRepoPkg.NewPGRepository(db)
	listRepo := listRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch. A down cluster is not fatal: the core
	// marketplace keeps working through the relational queries, search runs
	// degraded until the next successful connect.
	var engine *elastic.Engine
	esClient, err := essearch.NewClient(&essearch.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search features unavailable)", zap.Error(err))
	} else {
		engine = elastic.NewEngine(esClient, appLogger)
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	hierUC := hierUCPkg.NewHierarchyUseCase(hierRepo, redisClient, appLogger)

	var indexer search.Indexer
	var searchEngine search.Engine
	if engine != nil {
		indexer = engine
		searchEngine = engine
	}
	listUC := listUCPkg.NewListingUseCase(listRepo, hierRepo, redisClient, indexer, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6.2 Prepare the index and run a startup sync. Failures are logged and
	// skipped, never fatal.
	if engine != nil {
		initCtx, initCancel := context.WithTimeout(ctx, 2*time.Minute)
		if err := engine.EnsureIndex(initCtx); err != nil {
			appLogger.Warn("Could not initialize search index", zap.Error(err))
		} else if _, err := listUC.SyncSearchIndex(initCtx); err != nil {
			appLogger.Warn("Startup index sync failed", zap.Error(err))
		}
		initCancel()
	}

	// 6.5 Initialize Deal Event Listener
	dealListener := listListenerPkg.NewDealListener(kafkaConsumer, listUC, appLogger)
	go dealListener.Start(ctx)

	// 6.8 Schedule periodic full resync
	cronScheduler := cron.New()
	if engine != nil {
		_, err := cronScheduler.AddFunc(cfg.Sync.Schedule, func() {
			syncCtx, syncCancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer syncCancel()
			if _, err := listUC.SyncSearchIndex(syncCtx); err != nil {
				appLogger.Error("Scheduled index sync failed", zap.Error(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid sync schedule", zap.String("schedule", cfg.Sync.Schedule), zap.Error(err))
		}
		cronScheduler.Start()
		appLogger.Info("Index sync scheduled", zap.String("schedule", cfg.Sync.Schedule))
	}

	// 7. Initialize Handlers and Routes
	hierHandler := hierH.NewHierarchyHandler(hierUC, appLogger)
	listHandler := listH.NewListingHandler(listUC, appLogger)
	searchHandler := searchH.NewSearchHandler(searchEngine, listUC, appLogger)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/hierarchy", hierHandler.GetHierarchy).Methods("GET")

	api.HandleFunc("/listings", listHandler.CreateListing).Methods("POST")
	api.HandleFunc("/listings", listHandler.ListListings).Methods("GET")
	api.HandleFunc("/listings/{id}", listHandler.GetListing).Methods("GET")
	api.HandleFunc("/listings/{id}", listHandler.UpdateListing).Methods("PUT")
	api.HandleFunc("/listings/{id}/sold", listHandler.MarkSold).Methods("POST")
	api.HandleFunc("/listings/{id}", listHandler.DeleteListing).Methods("DELETE")

	api.HandleFunc("/search/search", searchHandler.Search).Methods("POST")
	api.HandleFunc("/search/suggestions", searchHandler.Suggestions).Methods("GET")
	api.HandleFunc("/search/sync", searchHandler.Sync).Methods("POST")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown error", zap.Error(err))
	}

	// Stop the scheduler before the clients close underneath a running sync.
	<-cronScheduler.Stop().Done()
	cancel()

	appLogger.Info("Server stopped")
}
