package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/openbook/chatseed/chat"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
)

var errNoChat = errors.New("provide -chat or both -a and -b")

// Prints the history of a chat, e.g. go run ./cmd/inspect -a U1 -b U2
func main() {
	chatID := flag.String("chat", "", "chat id")
	a := flag.String("a", "", "first participant of a one-to-one chat")
	b := flag.String("b", "", "second participant of a one-to-one chat")
	flag.Parse()

	cfg := config.Load()
	ctx, closeLogs := logger.Setup(context.Background(), cfg, os.Stderr)
	err := run(ctx, cfg, resolveChatID(*chatID, *a, *b), os.Stdout)
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func resolveChatID(chatID, a, b string) string {
	if chatID != "" {
		return chatID
	}
	if a == "" || b == "" {
		return ""
	}
	return chat.ID(a, b)
}

func run(ctx context.Context, cfg *config.Config, chatID string, out io.Writer) error {
	logger := log.LoggerFromContext(ctx)
	if chatID == "" {
		logger.Error(errNoChat.Error())
		return errNoChat
	}

	db, closeDB, err := sdk.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("error while opening store", slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	defer closeDB()

	messages, err := chat.LoadHistory(ctx, db, chatID)
	if err != nil {
		logger.Error("error while loading chat history", slog.String(log.ChatIDLogField, chatID), slog.String(log.ErrorMsgLogField, err.Error()))
		return err
	}
	printHistory(out, chatID, messages)
	return nil
}

func printHistory(out io.Writer, chatID string, messages []contract.FirestoreMessage) {
	fmt.Fprintf(out, "%s (%d messages)\n", chatID, len(messages))
	for _, m := range messages {
		fmt.Fprintf(out, "%s  %-28s  %s\n", m.SentAt.UTC().Format(time.RFC3339), m.SenderID, m.Text)
	}
}
