package main

import (
	"context"

	"github.com/peopledesk/identity-api/internal/api"
	"github.com/peopledesk/identity-api/internal/infrastructure/config"
	mongodb "github.com/peopledesk/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peopledesk/identity-api/internal/infrastructure/db/redis"
	"github.com/peopledesk/identity-api/pkg/logger"
)

// @title        Identity API
// @version      1.0
// @description  Issues and validates bearer credentials, enforces role-based access, and imports user records in bulk.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// Unique username/email indexes must exist before any import runs.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	e := api.NewRouter(db, rdb, cfg)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting identity api")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
