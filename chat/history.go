package chat

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/store"
)

const idPrefix = "chat_"

type Lister interface {
	List(ctx context.Context, collection string) ([]*store.Document, error)
}

// Participants returns a and b in lexicographic order.
func Participants(a, b string) []string {
	participants := []string{a, b}
	sort.Strings(participants)
	return participants
}

// ID derives the one-to-one chat id; ID(a, b) == ID(b, a).
func ID(a, b string) string {
	return idPrefix + strings.Join(Participants(a, b), "_")
}

func Path(chatID string) string {
	return store.Join(contract.ChatsCollection, chatID)
}

func MessagesPath(chatID string) string {
	return store.Join(contract.ChatsCollection, chatID, contract.MessagesCollection)
}

func MemberPath(chatID, uid string) string {
	return store.Join(contract.ChatsCollection, chatID, contract.MembersCollection, uid)
}

// LoadHistory returns the messages of chatID oldest first.
func LoadHistory(ctx context.Context, db Lister, chatID string) ([]contract.FirestoreMessage, error) {
	logger := log.LoggerFromContext(ctx)

	docs, err := db.List(ctx, MessagesPath(chatID))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		logger.Info("chat has no messages", slog.String(log.ChatIDLogField, chatID))
		return nil, nil
	}

	messages := make([]contract.FirestoreMessage, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, contract.MessageFromData(doc.ID, doc.Data))
	}
	sortMessages(messages)
	return messages, nil
}

func sortMessages(messages []contract.FirestoreMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].SentAt.Equal(messages[j].SentAt) {
			return messages[i].SentAt.Before(messages[j].SentAt)
		}
		return messages[i].ID < messages[j].ID
	})
}
