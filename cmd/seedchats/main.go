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

// GOOGLE_APPLICATION_CREDENTIALS=keys/staging-sa.json go run ./cmd/seedchats
func main() {
	planPath := flag.String("plan", "", "JSON seeding plan, the built-in staging plan when empty")
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

	report, err := seed.New(db).Run(ctx, plan)
	if err != nil {
		logger.Error("error while seeding", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	logger.Info("seeded users, chats, and messages",
		slog.Int("users", report.Users),
		slog.Any("chatIDs", report.ChatIDs),
		slog.Int("messages", report.Messages),
		slog.Bool("dryRun", cfg.DryRun),
	)
	return nil
}
