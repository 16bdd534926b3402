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

// Patches existing users documents. Missing users are logged and skipped.
func main() {
	file := flag.String("file", "", "JSON array of {uid, fields} patches, the built-in patch when empty")
	flag.Parse()

	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stdout)
	err := run(ctx, cfg, *file)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, file string) error {
	logger := log.LoggerFromContext(ctx)

	patches := fixture.Profiles()
	if file != "" {
		var err error
		if patches, err = fixture.LoadProfiles(file); err != nil {
			logger.Error("error while loading profiles", slog.String(log.ErrorMsgLogField, err.Error()))
			return err
		}
	}

	db, closeDB, err := sdk.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("error while opening store", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer closeDB()

	logger.Info("starting the update process", slog.Int("profiles", len(patches)))
	applied, err := seed.New(db).PatchProfiles(ctx, patches)
	if err != nil {
		logger.Error("error while patching profiles", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	logger.Info("user profile update complete", slog.Int("applied", applied), slog.Int("skipped", len(patches)-applied))
	return nil
}
