package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
	"github.com/openbook/chatseed/seed"
)

func main() {
	planPath := flag.String("plan", "", "JSON seeding plan, only its users are written")
	flag.Parse()

	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stdout)
	err := run(ctx, cfg, *planPath)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, planPath string) error {
	logger := log.LoggerFromContext(ctx)

	plan := fixture.Default()
	if planPath != "" {
		var err error
		if plan, err = fixture.Load(planPath); err != nil {
			logger.Error("error while loading plan", slog.String(log.ErrorMsgLogField, err.Error()))
			return err
		}
	}

	db, closeDB, err := sdk.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("error while opening store", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer closeDB()

	n, err := seed.New(db).SeedUsers(ctx, plan.Users)
	if err != nil {
		logger.Error("error while seeding users", slog.String(log.ErrorMsgLogField, err.Error()), slog.Int("seeded", n))
		return err
	}
	logger.Info("seeded users", slog.Int("users", n))
	return nil
}
