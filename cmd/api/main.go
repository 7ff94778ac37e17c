package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/config"
	"github.com/KhoaTranFitus/backend-food-app/app/controllers"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/keywords"
	"github.com/KhoaTranFitus/backend-food-app/internal/search"
	"github.com/KhoaTranFitus/backend-food-app/routes"
)

func main() {
	// .env cho môi trường dev, production dùng env thật
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting Food App Backend...")

	// Initialize MongoDB connection
	mongoClient, err := initMongoDB(cfg.Mongo.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	database := mongoClient.Database(cfg.Mongo.Database)

	// Initialize Redis (optional: lỗi thì chạy tiếp không có L2 cache
	// và revocation list)
	rdb := initRedis(cfg.Redis.URL, logger)

	// Load restaurant catalog
	snapshot, err := catalog.Load(cfg.Data.Restaurants, cfg.Data.Menus, logger)
	if err != nil {
		logger.Fatal("Failed to load restaurant catalog", zap.Error(err))
	}
	store := catalog.NewStore(snapshot)
	logger.Info("Catalog loaded", zap.Int("restaurants", snapshot.Len()))

	// Keyword tables: mặc định + overlay YAML nếu có cấu hình
	tables := keywords.Default()
	if cfg.Data.Keywords != "" {
		if err := tables.LoadOverlay(cfg.Data.Keywords); err != nil {
			logger.Fatal("Failed to load keyword overlay", zap.String("path", cfg.Data.Keywords), zap.Error(err))
		}
	}

	// Initialize search engine
	engine, err := search.NewEngine(store, tables, logger)
	if err != nil {
		logger.Fatal("Failed to create search engine", zap.Error(err))
	}

	// Initialize services
	searchCache, err := services.NewSearchCacheService(cfg.Cache.L1Size, rdb, cfg.Cache.TTL, logger)
	if err != nil {
		logger.Fatal("Failed to create search cache", zap.Error(err))
	}
	authService := services.NewAuthService(database, rdb, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	reviewService := services.NewReviewService(database, store, logger)
	favoriteService := services.NewFavoriteService(database, store, logger)
	chatService, err := services.NewChatService(store, services.ChatOptions{
		APIKey:      cfg.Chat.APIKey,
		BaseURL:     cfg.Chat.BaseURL,
		Model:       cfg.Chat.Model,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
		History:     cfg.Chat.History,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create chat service", zap.Error(err))
	}

	// Initialize controllers
	ctrl := routes.Controllers{
		Food: controllers.NewFoodController(engine, store, searchCache, reviewService, controllers.DataPaths{
			Restaurants: cfg.Data.Restaurants,
			Menus:       cfg.Data.Menus,
		}, logger),
		Map:     controllers.NewMapController(engine, logger),
		User:    controllers.NewUserController(authService, favoriteService, logger),
		Review:  controllers.NewReviewController(reviewService, logger),
		Chatbot: controllers.NewChatbotController(chatService, favoriteService, store, logger),
	}

	// Setup Gin router
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, ctrl, authService)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("Failed to close Redis", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}

func initMongoDB(uri string, logger *zap.Logger) (*mongo.Client, error) {
	logger.Info("Connecting to MongoDB", zap.String("uri", uri))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func initRedis(url string, logger *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("Redis URL không hợp lệ, chạy không có Redis", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Không kết nối được Redis, chạy không có Redis", zap.Error(err))
		return nil
	}

	logger.Info("Connected to Redis")
	return rdb
}
