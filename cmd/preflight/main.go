package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/you/shopfront/internal/config"
	"github.com/you/shopfront/internal/infrastructure/backend"
)

// Connectivity check for local setup: verifies Redis and the backend API are
// reachable before starting the gateway.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fmt.Println("Shopfront Preflight Check")
	fmt.Println("=========================")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to ping Redis at %s: %v", cfg.RedisAddr, err)
	}
	fmt.Printf("✓ Redis reachable at %s\n", cfg.RedisAddr)

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, noToken{})
	categories, err := client.Categories(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch categories from %s: %v", cfg.BackendBaseURL, err)
	}
	fmt.Printf("✓ Backend reachable at %s (%d categories)\n", cfg.BackendBaseURL, len(categories))
}

type noToken struct{}

func (noToken) Token() (string, bool) { return "", false }
