package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbook/chatseed/chat"
	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/store"
)

const (
	chatGreeting  = "Hello — this is a seeded chat."
	groupGreeting = "Group Chat Started!"

	// unread count of the member who did not start the chat
	counterpartUnreadCount = 7

	messageSpacing = 20 * time.Second
)

// exchange is the scripted conversation appended to every one-to-one chat.
var exchange = []struct {
	fromInitiator bool
	text          string
}{
	{fromInitiator: true, text: "Hey there!"},
	{fromInitiator: false, text: "Hi, how’s it going?"},
	{fromInitiator: true, text: "This is a test message."},
}

var defaultGroupTexts = []string{
	"Welcome to the group chat!",
	"Thanks for adding me!",
	"Looking forward to chatting!",
}

type Store interface {
	Set(ctx context.Context, path string, data map[string]any, merge bool) error
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Update(ctx context.Context, path string, data map[string]any) error
}

// Seeder writes fixture users, chats and messages. Every write is issued
// after the previous one returned.
type Seeder struct {
	db  Store
	now func() time.Time
}

type Report struct {
	Users    int
	ChatIDs  []string
	Messages int
}

func New(db Store) *Seeder {
	return &Seeder{db: db, now: time.Now}
}

func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

func userPath(uid string) string {
	return store.Join(contract.UsersCollection, uid)
}

// UpsertUser merges the display name and a fresh lastSeen into users/{uid}.
func (s *Seeder) UpsertUser(ctx context.Context, uid, displayName string) error {
	return s.db.Set(ctx, userPath(uid), map[string]any{
		"displayName": displayName,
		"lastSeen":    s.now(),
	}, true)
}

// SeedUser merges a full user fixture. Missing photo and phone are written
// as explicit nulls.
func (s *Seeder) SeedUser(ctx context.Context, u fixture.User) error {
	return s.db.Set(ctx, userPath(u.UID), map[string]any{
		"displayName": u.DisplayName,
		"photoUrl":    nullable(u.PhotoURL),
		"phone":       nullable(u.Phone),
		"lastSeen":    s.now(),
	}, true)
}

// SeedUsers applies SeedUser to every user and stops at the first failure.
func (s *Seeder) SeedUsers(ctx context.Context, users []fixture.User) (int, error) {
	logger := log.LoggerFromContext(ctx)
	for i, u := range users {
		if err := s.SeedUser(ctx, u); err != nil {
			return i, fmt.Errorf("seed user %s: %w", u.UID, err)
		}
		logger.Info("user seeded", slog.String(log.SeededUserIDLogField, u.UID))
	}
	return len(users), nil
}

// EnsureOneToOneChat creates or refreshes the chat between a and b, where a
// is the initiator, and appends the scripted three message exchange.
func (s *Seeder) EnsureOneToOneChat(ctx context.Context, a, b string) (string, error) {
	chatID := chat.ID(a, b)
	now := s.now()

	err := s.db.Set(ctx, chat.Path(chatID), map[string]any{
		"isGroup":       false,
		"name":          nil,
		"participants":  chat.Participants(a, b),
		"lastMessage":   chatGreeting,
		"lastMessageAt": now,
	}, true)
	if err != nil {
		return chatID, fmt.Errorf("chat document: %w", err)
	}

	for _, m := range []struct {
		uid         string
		unreadCount int
	}{
		{uid: a, unreadCount: 0},
		{uid: b, unreadCount: counterpartUnreadCount},
	} {
		err := s.db.Set(ctx, chat.MemberPath(chatID, m.uid), map[string]any{
			"joinedAt":    now,
			"unreadCount": m.unreadCount,
		}, true)
		if err != nil {
			return chatID, fmt.Errorf("member %s: %w", m.uid, err)
		}
	}

	for i, m := range exchange {
		sender := b
		if m.fromInitiator {
			sender = a
		}
		sentAt := now.Add(-time.Duration(len(exchange)-i) * messageSpacing)
		if err := s.appendMessage(ctx, chatID, sender, m.text, sentAt); err != nil {
			return chatID, err
		}
	}
	return chatID, nil
}

// EnsureGroupChat creates or refreshes the group chat and appends one
// message per participant, in participant order.
func (s *Seeder) EnsureGroupChat(ctx context.Context, g fixture.Group) (string, error) {
	now := s.now()

	err := s.db.Set(ctx, chat.Path(g.ID), map[string]any{
		"isGroup":       true,
		"name":          g.Name,
		"participants":  append([]string(nil), g.Participants...),
		"lastMessage":   groupGreeting,
		"lastMessageAt": now,
	}, true)
	if err != nil {
		return g.ID, fmt.Errorf("chat document: %w", err)
	}

	texts := g.Texts
	if len(texts) == 0 {
		texts = defaultGroupTexts
	}
	for i, uid := range g.Participants {
		sentAt := now.Add(-time.Duration(len(g.Participants)-i) * messageSpacing)
		if err := s.appendMessage(ctx, g.ID, uid, texts[i%len(texts)], sentAt); err != nil {
			return g.ID, err
		}
	}
	return g.ID, nil
}

func (s *Seeder) appendMessage(ctx context.Context, chatID, senderID, text string, sentAt time.Time) error {
	_, err := s.db.Add(ctx, chat.MessagesPath(chatID), map[string]any{
		"senderId": senderID,
		"text":     text,
		"sentAt":   sentAt,
		"status":   contract.MessageStatusSent,
		"type":     contract.MessageTypeText,
	})
	if err != nil {
		return fmt.Errorf("message from %s: %w", senderID, err)
	}
	return nil
}

// Run seeds plan in order: users, one-to-one chats, group chat. The first
// failure aborts the run; writes already made are kept.
func (s *Seeder) Run(ctx context.Context, plan *fixture.Plan) (*Report, error) {
	logger := log.LoggerFromContext(ctx)
	report := &Report{}

	for _, u := range plan.Users {
		if err := s.UpsertUser(ctx, u.UID, u.DisplayName); err != nil {
			return report, fmt.Errorf("upsert user %s: %w", u.UID, err)
		}
		report.Users++
		logger.Info("user upserted", slog.String(log.SeededUserIDLogField, u.UID))
	}

	for _, p := range plan.Pairs {
		chatID, err := s.EnsureOneToOneChat(ctx, p.A, p.B)
		if err != nil {
			return report, fmt.Errorf("seed chat %s: %w", chatID, err)
		}
		report.ChatIDs = append(report.ChatIDs, chatID)
		report.Messages += len(exchange)
		logger.Info("one-to-one chat seeded", slog.String(log.ChatIDLogField, chatID))
	}

	if plan.Group != nil {
		chatID, err := s.EnsureGroupChat(ctx, *plan.Group)
		if err != nil {
			return report, fmt.Errorf("seed group chat %s: %w", chatID, err)
		}
		report.ChatIDs = append(report.ChatIDs, chatID)
		report.Messages += len(plan.Group.Participants)
		logger.Info("group chat seeded", slog.String(log.ChatIDLogField, chatID))
	}
	return report, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
