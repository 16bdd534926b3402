package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

const (
	OpSet    = "set"
	OpMerge  = "merge"
	OpAdd    = "add"
	OpUpdate = "update"
)

// Write records one mutation applied to a Memory store.
type Write struct {
	Op   string
	Path string
}

// Memory is an in-process document store with Firestore write semantics:
// merge sets combine nested maps, firestore.ServerTimestamp resolves to the
// store clock, firestore.Delete removes a field and Add generates ids.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]map[string]any
	writes []Write
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{docs: map[string]map[string]any{}, now: time.Now}
}

// WithClock sets the clock used to resolve server timestamps.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Set(_ context.Context, path string, data map[string]any, merge bool) error {
	if !isDocPath(path) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.docs[path]
	if !merge || !ok {
		existing = map[string]any{}
	}
	m.docs[path] = m.merge(existing, data)
	op := OpSet
	if merge {
		op = OpMerge
	}
	m.writes = append(m.writes, Write{Op: op, Path: path})
	return nil
}

func (m *Memory) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	if !isCollectionPath(collection) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, collection)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	path := Join(collection, id)
	m.docs[path] = m.merge(map[string]any{}, data)
	m.writes = append(m.writes, Write{Op: OpAdd, Path: path})
	return id, nil
}

// Update sets the given fields of an existing document. Dotted keys address
// nested map fields.
func (m *Memory) Update(_ context.Context, path string, data map[string]any) error {
	if !isDocPath(path) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	for key, value := range data {
		parts := strings.Split(key, ".")
		target := doc
		for _, part := range parts[:len(parts)-1] {
			next, ok := target[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				target[part] = next
			}
			target = next
		}
		last := parts[len(parts)-1]
		if value == firestore.Delete {
			delete(target, last)
			continue
		}
		target[last] = m.resolve(value)
	}
	m.writes = append(m.writes, Write{Op: OpUpdate, Path: path})
	return nil
}

func (m *Memory) Get(_ context.Context, path string) (*Document, error) {
	if !isDocPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return &Document{ID: lastSegment(path), Path: path, Data: copyMap(doc)}, nil
}

func (m *Memory) List(_ context.Context, collection string) ([]*Document, error) {
	if !isCollectionPath(collection) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, collection)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := collection + "/"
	var docs []*Document
	for path, data := range m.docs {
		id, ok := strings.CutPrefix(path, prefix)
		if !ok || strings.Contains(id, "/") {
			continue
		}
		docs = append(docs, &Document{ID: id, Path: path, Data: copyMap(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Writes returns the mutations applied so far, in order.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Write(nil), m.writes...)
}

func (m *Memory) merge(dst, src map[string]any) map[string]any {
	for key, value := range src {
		if value == firestore.Delete {
			delete(dst, key)
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			current, _ := dst[key].(map[string]any)
			if current == nil {
				current = map[string]any{}
			}
			dst[key] = m.merge(current, nested)
			continue
		}
		dst[key] = m.resolve(value)
	}
	return dst
}

func (m *Memory) resolve(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return m.merge(map[string]any{}, v)
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = m.resolve(v[i])
		}
		return out
	}
	if value == firestore.ServerTimestamp {
		return m.now()
	}
	return value
}

func copyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, value := range src {
		switch v := value.(type) {
		case map[string]any:
			dst[key] = copyMap(v)
		case []string:
			dst[key] = append([]string(nil), v...)
		default:
			dst[key] = value
		}
	}
	return dst
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
