// Package store addresses Firestore documents by slash separated paths
// ("users/{uid}", "chats/{chatId}/messages").
package store

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid document path")
)

type Document struct {
	ID   string
	Path string
	Data map[string]any
}

// Join builds a path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func isDocPath(path string) bool {
	n := segments(path)
	return n > 0 && n%2 == 0
}

func isCollectionPath(path string) bool {
	return segments(path)%2 == 1
}

func segments(path string) int {
	if path == "" || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") || strings.Contains(path, "//") {
		return 0
	}
	return strings.Count(path, "/") + 1
}

// Store is implemented by Firestore and Memory.
type Store interface {
	Set(ctx context.Context, path string, data map[string]any, merge bool) error
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Update(ctx context.Context, path string, data map[string]any) error
	Get(ctx context.Context, path string) (*Document, error)
	List(ctx context.Context, collection string) ([]*Document, error)
}

var (
	_ Store = (*Firestore)(nil)
	_ Store = (*Memory)(nil)
)
