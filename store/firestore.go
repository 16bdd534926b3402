package store

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore issues every call directly against a Firestore client.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) doc(path string) (*firestore.DocumentRef, error) {
	if !isDocPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return f.client.Doc(path), nil
}

func (f *Firestore) collection(path string) (*firestore.CollectionRef, error) {
	if !isCollectionPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return f.client.Collection(path), nil
}

// Set writes data to path. With merge the write only touches the fields
// present in data, nested maps included.
func (f *Firestore) Set(ctx context.Context, path string, data map[string]any, merge bool) error {
	doc, err := f.doc(path)
	if err != nil {
		return err
	}
	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	_, err = doc.Set(ctx, data, opts...)
	return err
}

// Add inserts a new document with a generated id into collection.
func (f *Firestore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	coll, err := f.collection(collection)
	if err != nil {
		return "", err
	}
	doc, _, err := coll.Add(ctx, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (f *Firestore) Update(ctx context.Context, path string, data map[string]any) error {
	doc, err := f.doc(path)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: data[k]})
	}
	_, err = doc.Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return err
}

func (f *Firestore) Get(ctx context.Context, path string) (*Document, error) {
	doc, err := f.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return &Document{ID: snap.Ref.ID, Path: path, Data: snap.Data()}, nil
}

// List returns every document of collection ordered by id.
func (f *Firestore) List(ctx context.Context, collection string) ([]*Document, error) {
	coll, err := f.collection(collection)
	if err != nil {
		return nil, err
	}
	snaps, err := coll.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, &Document{
			ID:   snap.Ref.ID,
			Path: Join(collection, snap.Ref.ID),
			Data: snap.Data(),
		})
	}
	return docs, nil
}
