package chat

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/store"
)

func TestID(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected string
	}{
		{name: "sorted input", a: "U1", b: "U2", expected: "chat_U1_U2"},
		{name: "reversed input", a: "U2", b: "U1", expected: "chat_U1_U2"},
		{name: "real uids", a: "NhY1NzNu0FgCPCvboeHSPqoy7Ng2", b: "XenOj61VJRc7rMmrPykMNIMhr", expected: "chat_NhY1NzNu0FgCPCvboeHSPqoy7Ng2_XenOj61VJRc7rMmrPykMNIMhr"},
		{name: "uppercase sorts first", a: "wv2OJVWg8fPo1qZTN483QGqyt132", b: "NhY1NzNu0FgCPCvboeHSPqoy7Ng2", expected: "chat_NhY1NzNu0FgCPCvboeHSPqoy7Ng2_wv2OJVWg8fPo1qZTN483QGqyt132"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ID(test.a, test.b); got != test.expected {
				t.Errorf("ID(%q, %q) = %q; want %q", test.a, test.b, got, test.expected)
			}
			if ID(test.a, test.b) != ID(test.b, test.a) {
				t.Errorf("ID(%q, %q) != ID(%q, %q)", test.a, test.b, test.b, test.a)
			}
		})
	}
}

func TestParticipants(t *testing.T) {
	got := Participants("U2", "U1")
	if !reflect.DeepEqual(got, []string{"U1", "U2"}) {
		t.Errorf("Participants(U2, U1) = %v; want [U1 U2]", got)
	}
}

func TestSortMessages(t *testing.T) {
	base := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		messages []contract.FirestoreMessage
		expected []string
	}{
		{
			name: "ordered by sentAt",
			messages: []contract.FirestoreMessage{
				{ID: "a", SentAt: base.Add(-20 * time.Second)},
				{ID: "b", SentAt: base.Add(-60 * time.Second)},
				{ID: "c", SentAt: base.Add(-40 * time.Second)},
			},
			expected: []string{"b", "c", "a"},
		},
		{
			name: "equal sentAt falls back to id",
			messages: []contract.FirestoreMessage{
				{ID: "z", SentAt: base},
				{ID: "m", SentAt: base},
			},
			expected: []string{"m", "z"},
		},
		{
			name:     "empty",
			messages: nil,
			expected: []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sortMessages(test.messages)
			ids := []string{}
			for _, m := range test.messages {
				ids = append(ids, m.ID)
			}
			if !reflect.DeepEqual(ids, test.expected) {
				t.Errorf("sortMessages order = %v; want %v", ids, test.expected)
			}
		})
	}
}

func TestLoadHistory(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemory()
	base := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)

	for _, m := range []struct {
		sender string
		offset time.Duration
	}{
		{"U1", -20 * time.Second},
		{"U2", -40 * time.Second},
		{"U1", -60 * time.Second},
	} {
		if _, err := db.Add(ctx, MessagesPath("chat_U1_U2"), map[string]any{
			"senderId": m.sender,
			"text":     "hi",
			"sentAt":   base.Add(m.offset),
		}); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := LoadHistory(ctx, db, "chat_U1_U2")
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("LoadHistory() returned %d messages; want 3", len(messages))
	}
	if !messages[0].SentAt.Equal(base.Add(-60 * time.Second)) {
		t.Errorf("first message sentAt = %v; want %v", messages[0].SentAt, base.Add(-60*time.Second))
	}

	empty, err := LoadHistory(ctx, db, "chat_missing")
	if err != nil || empty != nil {
		t.Errorf("LoadHistory(missing) = %v, %v; want nil, nil", empty, err)
	}
}
