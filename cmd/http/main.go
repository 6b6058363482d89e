package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/textile-erp-service/config"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/server"
	"github.com/fekuna/textile-erp-service/pkg/broker"
	"github.com/fekuna/textile-erp-service/pkg/cache"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"github.com/fekuna/textile-erp-service/pkg/database/postgres"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/search"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	adjH "github.com/fekuna/textile-erp-service/internal/adjustment/handler"
	adjRepoPkg "github.com/fekuna/textile-erp-service/internal/adjustment/repository"
	adjUCPkg "github.com/fekuna/textile-erp-service/internal/adjustment/usecase"

	adminH "github.com/fekuna/textile-erp-service/internal/admin/handler"
	adminRepoPkg "github.com/fekuna/textile-erp-service/internal/admin/repository"
	adminUCPkg "github.com/fekuna/textile-erp-service/internal/admin/usecase"

	agentH "github.com/fekuna/textile-erp-service/internal/agent/handler"
	agentRepoPkg "github.com/fekuna/textile-erp-service/internal/agent/repository"
	agentUCPkg "github.com/fekuna/textile-erp-service/internal/agent/usecase"

	custH "github.com/fekuna/textile-erp-service/internal/customer/handler"
	custRepoPkg "github.com/fekuna/textile-erp-service/internal/customer/repository"
	custUCPkg "github.com/fekuna/textile-erp-service/internal/customer/usecase"

	dashH "github.com/fekuna/textile-erp-service/internal/dashboard/handler"
	dashUCPkg "github.com/fekuna/textile-erp-service/internal/dashboard/usecase"

	notifGateway "github.com/fekuna/textile-erp-service/internal/notification/gateway"
	notifH "github.com/fekuna/textile-erp-service/internal/notification/handler"
	notifListenerPkg "github.com/fekuna/textile-erp-service/internal/notification/listener"
	notifPub "github.com/fekuna/textile-erp-service/internal/notification/publisher"
	notifRepoPkg "github.com/fekuna/textile-erp-service/internal/notification/repository"
	notifUCPkg "github.com/fekuna/textile-erp-service/internal/notification/usecase"

	orderFeed "github.com/fekuna/textile-erp-service/internal/order/feed"
	orderH "github.com/fekuna/textile-erp-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/textile-erp-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/textile-erp-service/internal/order/usecase"

	prodH "github.com/fekuna/textile-erp-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/textile-erp-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/textile-erp-service/internal/product/usecase"

	retH "github.com/fekuna/textile-erp-service/internal/returns/handler"
	retRepoPkg "github.com/fekuna/textile-erp-service/internal/returns/repository"
	retUCPkg "github.com/fekuna/textile-erp-service/internal/returns/usecase"

	stockH "github.com/fekuna/textile-erp-service/internal/stock/handler"
	stockRepoPkg "github.com/fekuna/textile-erp-service/internal/stock/repository"
	stockUCPkg "github.com/fekuna/textile-erp-service/internal/stock/usecase"

	uploadH "github.com/fekuna/textile-erp-service/internal/upload/handler"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to MongoDB
	mongoClient, db, err := mongodb.NewMongo(ctx, &mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	appLogger.Info("Connected to MongoDB", zap.String("db_name", cfg.Mongo.Database))

	// 4. Connect to PostgreSQL (adjustment ledger)
	pg, err := postgres.NewPostgres(&postgres.Config{
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
		appLogger.Fatal("Could not connect to PostgreSQL", zap.Error(err))
	}
	defer pg.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 5. Initialize Repositories
	seq := mongodb.NewCounterSequencer(db)
	prodRepo := prodRepoPkg.NewMongoRepository(db)
	stockRepo := stockRepoPkg.NewMongoRepository(db)
	orderRepo := orderRepoPkg.NewMongoRepository(db)
	custRepo := custRepoPkg.NewMongoRepository(db)
	retRepo := retRepoPkg.NewMongoRepository(db)
	adminRepo := adminRepoPkg.NewMongoRepository(db)
	agentRepo := agentRepoPkg.NewMongoRepository(db)
	msgRepo := notifRepoPkg.NewMessageRepository(db)
	settingsRepo := notifRepoPkg.NewSettingsRepository(db)
	adjRepo := adjRepoPkg.NewPGRepository(pg)
	if err := adjRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Could not prepare adjustment ledger schema", zap.Error(err))
	}

	// 6. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 7. Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (product search falls back to MongoDB)", zap.Error(err))
			esClient = nil
		} else if err := prodUCPkg.EnsureIndex(ctx, esClient); err != nil {
			appLogger.Warn("Could not create product search index", zap.Error(err))
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. Notifications
	gateway := notifGateway.NewWhatsAppGateway(notifGateway.Config{
		APIURL:     cfg.WhatsApp.APIURL,
		InstanceID: cfg.WhatsApp.InstanceID,
		Token:      cfg.WhatsApp.Token,
		Timeout:    cfg.WhatsApp.Timeout,
	})
	if cfg.WhatsApp.InstanceID == "" || cfg.WhatsApp.Token == "" {
		appLogger.Warn("WhatsApp gateway not configured; notifications will be recorded as failed")
	}
	dispatcher := notifUCPkg.NewDispatcher(adminRepo, msgRepo, settingsRepo, gateway, appLogger)

	var publisher notification.Publisher
	var direct *notifPub.DirectPublisher
	if cfg.Kafka.Enabled {
		brokerCfg := &broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		producer := broker.NewProducer(brokerCfg)
		defer producer.Close()
		consumer := broker.NewConsumer(brokerCfg)
		defer consumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		publisher = notifPub.NewKafkaPublisher(producer)
		listener := notifListenerPkg.NewNotificationListener(consumer, dispatcher, appLogger)
		go listener.Start(ctx)
	} else {
		direct = notifPub.NewDirectPublisher(dispatcher, appLogger)
		publisher = direct
	}

	hub := orderFeed.NewHub(appLogger)

	// 9. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, adjRepo, publisher, appLogger)
	adjUC := adjUCPkg.NewAdjustmentUseCase(adjRepo, stockRepo, redisClient, publisher, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, custRepo, stockRepo, seq, publisher, hub, appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, orderRepo, publisher, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, orderRepo, stockRepo, redisClient, esClient, appLogger)
	retUC := retUCPkg.NewReturnUseCase(retRepo, orderRepo, seq, publisher, appLogger)
	adminUC := adminUCPkg.NewAdminUseCase(adminRepo, appLogger)
	agentUC := agentUCPkg.NewAgentUseCase(agentRepo, appLogger)
	notifUC := notifUCPkg.NewNotificationUseCase(msgRepo, settingsRepo, dispatcher, appLogger)
	dashUC := dashUCPkg.NewDashboardUseCase(prodRepo, custRepo, orderRepo, stockRepo, redisClient, appLogger)

	// 10. Initialize Handlers and Router
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := server.NewRouter(server.Config{
		APIPrefix:      cfg.Server.APIPrefix,
		UploadDir:      cfg.Server.UploadDir,
		FrontendDir:    cfg.Server.FrontendDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, appLogger, registry,
		prodH.NewProductHandler(prodUC, appLogger),
		stockH.NewStockHandler(stockUC, appLogger),
		orderH.NewOrderHandler(orderUC, hub.Serve, appLogger),
		custH.NewCustomerHandler(custUC, appLogger),
		retH.NewReturnHandler(retUC, appLogger),
		adjH.NewAdjustmentHandler(adjUC, appLogger),
		adminH.NewAdminHandler(adminUC, appLogger),
		agentH.NewAgentHandler(agentUC, appLogger),
		notifH.NewNotificationHandler(notifUC, appLogger),
		dashH.NewDashboardHandler(dashUC, appLogger),
		uploadH.NewUploadHandler(cfg.Server.UploadDir, cfg.Server.MaxUploadFiles, appLogger),
	)

	// 11. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port), zap.String("api_prefix", cfg.Server.APIPrefix))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if direct != nil {
		direct.Wait()
	}
	appLogger.Info("Server stopped")
}
