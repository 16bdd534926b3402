package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/openbook/chatseed/auth"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
	"github.com/openbook/chatseed/seed"
	"github.com/openbook/chatseed/store"
)

const defaultChats = 5

var errDryRunUnsupported = errors.New("account seeding creates real auth users and has no dry run")

// Creates the <name>@test.com accounts, skipping those that already exist,
// then chats between consecutive accounts.
func main() {
	chats := flag.Int("chats", defaultChats, "number of chats between consecutive accounts")
	flag.Parse()

	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stdout)
	err := run(ctx, cfg, *chats)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, chats int) error {
	logger := log.LoggerFromContext(ctx)

	if cfg.DryRun {
		logger.Error(errDryRunUnsupported.Error())
		return errDryRunUnsupported
	}

	clients, err := sdk.Open(ctx, cfg)
	if err != nil {
		logger.Error("error while initializing firebase", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer clients.Close()

	seeder := seed.New(store.NewFirestore(clients.Firestore))

	logger.Info("seeding users")
	created, err := seeder.SeedAccounts(ctx, auth.NewAccounts(clients.Auth), fixture.Accounts(), auth.IsDuplicate)
	if err != nil {
		logger.Error("error while seeding accounts", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}

	logger.Info("seeding chats", slog.Int("accounts", len(created)))
	chatIDs, err := seeder.SeedAccountChats(ctx, created, chats)
	if err != nil {
		logger.Error("error while seeding chats", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	logger.Info("all done", slog.Int("accounts", len(created)), slog.Int("chats", len(chatIDs)))
	return nil
}
