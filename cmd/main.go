package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	contactapp "github.com/raigadbazaar/marketplace/application/contact"
	lockapp "github.com/raigadbazaar/marketplace/application/lock"
	propertyapp "github.com/raigadbazaar/marketplace/application/property"
	userapp "github.com/raigadbazaar/marketplace/application/user"
	"github.com/raigadbazaar/marketplace/cmd/config"
	redisclient "github.com/raigadbazaar/marketplace/cmd/redis"
	_ "github.com/raigadbazaar/marketplace/docs"
	propertyRepo "github.com/raigadbazaar/marketplace/repository/property"
	redisRepo "github.com/raigadbazaar/marketplace/repository/redis"
	txRepo "github.com/raigadbazaar/marketplace/repository/tx"
	userRepo "github.com/raigadbazaar/marketplace/repository/user"
	"github.com/raigadbazaar/marketplace/thirdparty/rabbitmq"
	"github.com/raigadbazaar/marketplace/transport"
	"github.com/raigadbazaar/marketplace/utils/logger"
	"go.uber.org/zap"
)

// @title Raigad Bazaar API
// @version 1.0
// @description Property marketplace API: listings, buyer locks and owner contact
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// RabbitMQ: contact notifications + delayed lock expirations
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	PropertyRepo := propertyRepo.NewPropertyRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	PropertyApp := propertyapp.NewPropertyApp(PropertyRepo, UserRepo)
	LockApp := lockapp.NewLockApp(cfg, TxRepo, PropertyRepo, UserRepo, publisher)
	ContactApp := contactapp.NewContactApp(PropertyRepo, UserRepo, publisher)

	httpTransport := transport.NewTransport(UserApp, PropertyApp, LockApp, ContactApp, cfg.Internal.APIKey)

	// Lock expiration sweep consumer
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Internal.APIURL, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	consumerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := consumer.Start(consumerCtx); err != nil {
		logger.Fatal("err start lock expiration consumer", zap.Error(err))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
