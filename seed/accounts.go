package seed

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/openbook/chatseed/chat"
	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
)

type AccountCreator interface {
	Create(ctx context.Context, account fixture.Account) (string, error)
}

type CreatedAccount struct {
	UID string
	fixture.Account
}

// SeedAccounts creates an auth user and a users document per account. An
// account that fails (duplicate email, rejected password) is logged and
// skipped; only a cancelled context stops the loop.
func (s *Seeder) SeedAccounts(ctx context.Context, creator AccountCreator, accounts []fixture.Account, isDuplicate func(error) bool) ([]CreatedAccount, error) {
	logger := log.LoggerFromContext(ctx)

	var created []CreatedAccount
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		uid, err := s.createAccount(ctx, creator, account)
		if err != nil {
			logger.Warn("account skipped",
				slog.String("email", account.Email),
				slog.Bool("duplicate", isDuplicate != nil && isDuplicate(err)),
				slog.String(log.ErrorMsgLogField, err.Error()),
			)
			continue
		}
		created = append(created, CreatedAccount{UID: uid, Account: account})
		logger.Info("account created", slog.String(log.SeededUserIDLogField, uid), slog.String("email", account.Email))
	}
	return created, nil
}

func (s *Seeder) createAccount(ctx context.Context, creator AccountCreator, account fixture.Account) (string, error) {
	uid, err := creator.Create(ctx, account)
	if err != nil {
		return "", err
	}
	err = s.db.Set(ctx, userPath(uid), map[string]any{
		"uid":         uid,
		"displayName": account.DisplayName,
		"email":       account.Email,
		"photoURL":    account.PhotoURL,
		"createdAt":   firestore.ServerTimestamp,
	}, false)
	if err != nil {
		return "", fmt.Errorf("users document %s: %w", uid, err)
	}
	return uid, nil
}

// SeedAccountChats opens up to n chats between consecutive accounts with
// auto-generated ids and one greeting each. Failures are fatal.
func (s *Seeder) SeedAccountChats(ctx context.Context, accounts []CreatedAccount, n int) ([]string, error) {
	logger := log.LoggerFromContext(ctx)

	var chatIDs []string
	for i := 0; i < n && i+1 < len(accounts); i++ {
		a, b := accounts[i], accounts[i+1]
		greeting := fmt.Sprintf("Hi from %s!", a.DisplayName)

		chatID, err := s.db.Add(ctx, contract.ChatsCollection, map[string]any{
			"participants":         []string{a.UID, b.UID},
			"chatName":             fmt.Sprintf("Chat between %s and %s", a.DisplayName, b.DisplayName),
			"lastMessage":          greeting,
			"lastMessageTimestamp": firestore.ServerTimestamp,
			"unreadCounts": map[string]any{
				a.UID: 0,
				b.UID: 1,
			},
		})
		if err != nil {
			return chatIDs, fmt.Errorf("chat %s-%s: %w", a.UID, b.UID, err)
		}
		_, err = s.db.Add(ctx, chat.MessagesPath(chatID), map[string]any{
			"senderId":  a.UID,
			"text":      greeting,
			"timestamp": firestore.ServerTimestamp,
		})
		if err != nil {
			return chatIDs, fmt.Errorf("chat %s message: %w", chatID, err)
		}
		chatIDs = append(chatIDs, chatID)
		logger.Info("account chat created",
			slog.String(log.ChatIDLogField, chatID),
			slog.String("between", a.DisplayName+" ↔ "+b.DisplayName),
		)
	}
	return chatIDs, nil
}
