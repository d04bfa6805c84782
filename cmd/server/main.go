// Package main is the entry point for the wallet API server. It loads
// configuration, connects PostgreSQL and Redis, wires the routes and starts
// the HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"opal/internal/config"
	"opal/internal/repositories"
	"opal/internal/repositories/cache"
	"opal/internal/routes"
	"opal/internal/services/transfer"
)

func main() {
	config.LoadEnv()

	db, err := repositories.Open(repositories.DBConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close(db)

	// Redis is optional; without it reads always hit the database.
	var cacheService transfer.Cache
	var redisCache *cache.CacheService
	if config.GetEnv("REDIS_HOST", "") != "" {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		redisCache = cache.NewCacheService(client, config.GetDurationEnv("CACHE_TTL", 5*time.Minute))

		if err := redisCache.HealthCheck(context.Background()); err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
			redisCache = nil
		}
	}
	if redisCache != nil {
		if err := redisCache.FlushAll(context.Background()); err != nil {
			log.Printf("Failed to flush Redis cache: %v", err)
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}()
		cacheService = redisCache
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Throttle credential endpoints per client IP.
	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, db, cacheService)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
