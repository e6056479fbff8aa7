package main

import (
	"context"
	"log"
	"time"

	"go-event-ticketing/config"
	"go-event-ticketing/internal/cache"
	"go-event-ticketing/internal/database"
	"go-event-ticketing/internal/handler"
	"go-event-ticketing/internal/repository"
	"go-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load(".env")

	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	if cfg.Server.SeedData {
		if err := database.Seed(ctx, pool); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	categoryRepo := repository.NewCategoryRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)

	overviewCache := cache.NewRedisOverviewCache(rdb, time.Duration(cfg.Redis.OverviewTTLSeconds)*time.Second)

	categoryService := service.NewCategoryService(categoryRepo)
	eventService := service.NewEventService(eventRepo, categoryRepo, overviewCache)
	purchaseService := service.NewPurchaseService(pool, purchaseRepo, eventRepo, overviewCache)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewCategoryHandler(categoryService).RegisterRoutes(router)
	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewPurchaseHandler(purchaseService).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
