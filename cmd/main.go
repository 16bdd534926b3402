package main

import (
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	_ "github.com/openbook/chatseed"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/log"
)

// Serves the Seed function on PORT (8082 by default):
//
//	FUNCTION_TARGET=Seed go run ./cmd
//	curl -X POST -H "Authorization: Bearer $TOKEN" -d '{"dryRun": true}' localhost:8082
func main() {
	cfg := config.Load()
	logger := slog.New(log.NewCloudLoggingHandler(os.Stdout, cfg.LogLevel))

	logger.Info("starting seed function", slog.String("port", cfg.Port))
	if err := funcframework.Start(cfg.Port); err != nil {
		logger.Error("error while serving", slog.String(log.ErrorMsgLogField, err.Error()))
		os.Exit(1)
	}
}
