package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/openbook/chatseed/auth"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
)

// Checks the service account can manage auth users: creates a test user and
// renames it.
func main() {
	email := flag.String("email", "testuser@example.com", "email of the test user")
	flag.Parse()

	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stdout)
	err := run(ctx, cfg, *email)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, email string) error {
	logger := log.LoggerFromContext(ctx)

	clients, err := sdk.Open(ctx, cfg)
	if err != nil {
		logger.Error("error while initializing firebase", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer clients.Close()
	accounts := auth.NewAccounts(clients.Auth)

	uid, err := accounts.Create(ctx, fixture.Account{
		Email:       email,
		Password:    "password123",
		DisplayName: "Test User",
	})
	if err != nil {
		logger.Error("error accessing Firebase Authentication",
			slog.Bool("duplicate", auth.IsDuplicate(err)),
			slog.String(log.ErrorMsgLogField, err.Error()),
		)
		return err
	}
	logger.Info("user created successfully", slog.String(log.UserIDLogField, uid))

	if err := accounts.Rename(ctx, uid, "Updated Test User"); err != nil {
		logger.Error("error updating user", slog.String(log.UserIDLogField, uid), slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	logger.Info("user profile updated successfully", slog.String(log.UserIDLogField, uid))
	return nil
}
