package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roicompagnie/internal/config"
	"roicompagnie/internal/engine"
	"roicompagnie/internal/server"
	"roicompagnie/internal/store"
	redisstore "roicompagnie/internal/store/redis"
	sqlitestore "roicompagnie/internal/store/sqlite"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger()
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saves, err := openStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("open save store")
	}
	defer saves.Close()
	logger.WithField("store", cfg.Store).Info("save store ready")

	srv := server.New(server.Options{
		Port:      cfg.Port,
		PublicURL: cfg.PublicURL,
		Store:     saves,
		Rules:     engine.DefaultConfig(),
		Seed:      cfg.Seed,
		Logger:    logger,
	})
	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Error("server error")
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return sqlitestore.Open(cfg.SQLitePath)
	case config.StoreRedis:
		return redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
