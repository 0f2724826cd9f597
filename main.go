package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/config"
	"github.com/prospect-fusion/app/controllers"
	"github.com/prospect-fusion/app/services"
	"github.com/prospect-fusion/internal/comparator"
	"github.com/prospect-fusion/internal/filter"
	"github.com/prospect-fusion/internal/fusion"
	"github.com/prospect-fusion/internal/search"
	"github.com/prospect-fusion/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Prospect Fusion Service")

	// Engine tuning (thresholds, weights, interest table)
	if path := getEnv("ENGINE_CONFIG", ""); path != "" {
		if err := config.Load(path); err != nil {
			logger.Fatal("Failed to load engine config", zap.String("path", path), zap.Error(err))
		}
		logger.Info("Engine config loaded", zap.String("path", path))
	}

	// 3. MongoDB (optional, enables run persistence)
	var mongoDB *mongo.Database
	if mongoURL := getEnv("MONGO_URL", ""); mongoURL != "" {
		mongoDB = initMongoDB(mongoURL, logger)
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	} else {
		logger.Info("MONGO_URL not set, runs stay in memory")
	}

	// 4. Engine components
	cmp := comparator.NewComparator(logger)
	fuser := fusion.NewFuser(cmp, logger)
	zoneFilter := filter.NewZoneFilter(logger)

	// 5. Comparison cache (LRU L1, Redis L2 when configured)
	l1Size := getEnvInt("L1_CACHE_SIZE", 10000)
	memoryCache, err := services.NewMemoryCacheService(l1Size)
	if err != nil {
		logger.Fatal("Failed to initialize memory cache", zap.Error(err))
	}

	var cacheService services.ICacheService = memoryCache
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		redisCache, err := services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		cacheService = services.NewHybridCacheService(memoryCache, redisCache, logger)
		logger.Info("Hybrid comparison cache enabled (LRU + Redis)")
	}

	// 6. Run store
	var runStore *services.RunStore
	if mongoDB != nil {
		runStore, err = services.NewRunStore(mongoDB, logger)
		if err != nil {
			logger.Fatal("Failed to initialize run store", zap.Error(err))
		}
	}

	// 7. Meilisearch run indexer (optional, enables run search)
	var indexer *search.RunIndexer
	if meiliURL := viper.GetString("meilisearch.url"); meiliURL != "" {
		client := search.NewClientWrapper(meiliURL, viper.GetString("meilisearch.master_key"))
		indexer, err = search.NewRunIndexer(client, logger)
		if err != nil {
			logger.Warn("Failed to initialize Meilisearch, run search disabled", zap.Error(err))
			indexer = nil
		}
	}

	// 8. Services
	prospectService := services.NewProspectService(cmp, fuser, zoneFilter, cacheService, runStore, indexer, logger)
	adminService := services.NewAdminService(mongoDB, prospectService, logger)

	// 9. Controllers
	prospectController := controllers.NewProspectController(prospectService, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	// 10. Router
	router := gin.New()
	routes.SetupAllRoutes(router, prospectController, adminController)

	// 11. Serve
	port := getEnv("APP_PORT", "8080")
	logger.Info("Prospect Fusion Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig loads configuration from file and env vars.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("cache.l1_size", 10000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger builds the structured logger for the current environment.
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initMongoDB connects and pings MongoDB.
func initMongoDB(mongoURL string, logger *zap.Logger) *mongo.Database {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	dbName := getEnv("MONGO_DB", "prospect_fusion")
	db := client.Database(dbName)
	logger.Info("Connected to MongoDB", zap.String("database", dbName))

	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
