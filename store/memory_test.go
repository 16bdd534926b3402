package store

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMergeKeepsUnrelatedFields(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{
		"displayName": "Zah",
		"bio":         "Coffee lover",
		"prefs":       map[string]any{"theme": "light", "mute": false},
	}, false))
	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{
		"displayName": "Zah Martin",
		"prefs":       map[string]any{"theme": "dark"},
	}, true))

	doc, err := m.Get(ctx, "users/U1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"displayName": "Zah Martin",
		"bio":         "Coffee lover",
		"prefs":       map[string]any{"theme": "dark", "mute": false},
	}, doc.Data)
}

func TestMemorySetWithoutMergeReplaces(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{"a": 1, "b": 2}, false))
	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{"a": 3}, false))

	doc, err := m.Get(ctx, "users/U1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 3}, doc.Data)
}

func TestMemoryServerTimestampAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 9, 8, 48, 9, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{
		"createdAt": firestore.ServerTimestamp,
		"obsolete":  true,
	}, false))
	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{"obsolete": firestore.Delete}, true))

	doc, err := m.Get(ctx, "users/U1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"createdAt": now}, doc.Data)
}

func TestMemoryAddAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first, err := m.Add(ctx, "chats/c1/messages", map[string]any{"text": "one"})
	require.NoError(t, err)
	second, err := m.Add(ctx, "chats/c1/messages", map[string]any{"text": "two"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 20)

	require.NoError(t, m.Set(ctx, "chats/c1/members/U1", map[string]any{"unreadCount": 0}, true))
	require.NoError(t, m.Set(ctx, "chats/c1", map[string]any{"isGroup": false}, true))

	docs, err := m.List(ctx, "chats/c1/messages")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	chats, err := m.List(ctx, "chats")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "c1", chats[0].ID)

	assert.Equal(t, []Write{
		{Op: OpAdd, Path: "chats/c1/messages/" + first},
		{Op: OpAdd, Path: "chats/c1/messages/" + second},
		{Op: OpMerge, Path: "chats/c1/members/U1"},
		{Op: OpMerge, Path: "chats/c1"},
	}, m.Writes())
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Update(ctx, "users/missing", map[string]any{"bio": ""})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{"displayName": "Alexander"}, false))
	require.NoError(t, m.Update(ctx, "users/U1", map[string]any{
		"statusMessage":  "Away",
		"settings.theme": "light",
	}))

	doc, err := m.Get(ctx, "users/U1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"displayName":   "Alexander",
		"statusMessage": "Away",
		"settings":      map[string]any{"theme": "light"},
	}, doc.Data)
}

func TestMemoryInvalidPaths(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	tests := []struct {
		name string
		call func() error
	}{
		{"set on collection path", func() error { return m.Set(ctx, "users", map[string]any{}, true) }},
		{"add on document path", func() error { _, err := m.Add(ctx, "users/U1", map[string]any{}); return err }},
		{"get empty path", func() error { _, err := m.Get(ctx, ""); return err }},
		{"list with trailing slash", func() error { _, err := m.List(ctx, "users/"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrInvalidPath)
		})
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "users/U1", map[string]any{"displayName": "Mia"}, false))

	doc, err := m.Get(ctx, "users/U1")
	require.NoError(t, err)
	doc.Data["displayName"] = "changed"

	doc, err = m.Get(ctx, "users/U1")
	require.NoError(t, err)
	assert.Equal(t, "Mia", doc.Data["displayName"])
}
