package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkroom/cms/internal/infrastructure/config"
	mongorepo "github.com/inkroom/cms/internal/infrastructure/db/mongo"
	redisstore "github.com/inkroom/cms/internal/infrastructure/db/redis"
	"github.com/inkroom/cms/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "contentd",
	Short:         "Inkroom CMS backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// stores holds the live backend connections shared by every subcommand.
type stores struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *mongo.Client
	db     *mongo.Database
	redis  *redis.Client
}

// open loads configuration, initialises logging and connects to MongoDB.
// Redis is only dialled when withRedis is set.
func open(ctx context.Context, withRedis bool) (*stores, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "contentd",
	})

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	s := &stores{cfg: cfg, log: log, client: client, db: db}

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	if withRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			s.close(ctx)
			return nil, err
		}
		s.redis = rdb
	}

	return s, nil
}

func (s *stores) close(ctx context.Context) {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := s.client.Disconnect(ctx); err != nil {
		s.log.Warn().Err(err).Msg("mongo disconnect")
	}
}
