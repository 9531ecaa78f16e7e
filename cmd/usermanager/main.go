package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"user_manager/internal/app/di"
	"user_manager/internal/feature/user/transport/cli"
	"user_manager/internal/feature/user/usecase"
	infradb "user_manager/internal/platform/db"
	"user_manager/internal/platform/logger"
	infraredis "user_manager/internal/platform/redis"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; real environment variables win.
	envErr := godotenv.Load(".env")

	slog.SetDefault(logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stderr))
	if envErr != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	ctx := context.Background()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return 1
	}
	defer infradb.Close(db)

	// Redis
	redisCfg := infraredis.LoadConfigFromEnv()
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
		if !errors.Is(err, infraredis.ErrNotConfigured) {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	userRepo := di.NewUserRepository(rdb, db, redisCfg.TTL)
	userUC := usecase.NewUserUsecase(userRepo)
	shell := cli.NewShell(os.Stdin, os.Stdout, userUC)

	if err := shell.Run(ctx); err != nil {
		slog.Error("shell stopped with error", "error", err)
		return 1
	}
	return 0
}
