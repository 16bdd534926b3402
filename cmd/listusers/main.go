package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
	"github.com/openbook/chatseed/store"
)

// Prints every users document. Logs go to stderr so stdout stays readable.
func main() {
	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stderr)
	err := run(ctx, cfg, os.Stdout)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger := log.LoggerFromContext(ctx)

	db, closeDB, err := sdk.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("error while opening store", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer closeDB()

	docs, err := db.List(ctx, contract.UsersCollection)
	if err != nil {
		logger.Error("error fetching users", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	printUsers(out, docs)
	return nil
}

func printUsers(out io.Writer, docs []*store.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(out, "No users found.")
		return
	}
	for _, doc := range docs {
		u := contract.UserFromData(doc.ID, doc.Data)
		fmt.Fprintf(out, "User ID: %s\n", u.ID)
		fmt.Fprintf(out, "Name: %s\n", u.DisplayName)
		fmt.Fprintf(out, "Email: %s\n", u.Email)
		fmt.Fprintf(out, "Avatar URL: %s\n", u.Photo)
		fmt.Fprintf(out, "Status Message: %s\n", u.StatusMessage)
		fmt.Fprintln(out, "---------------------------------------------")
	}
}
