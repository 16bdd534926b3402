package sdk

import (
	"context"

	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/store"
)

// OpenStore returns the Firestore backed store, or an in-memory store when
// cfg.DryRun is set. The returned func releases the clients.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.DryRun {
		return store.NewMemory(), func() {}, nil
	}
	clients, err := Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.NewFirestore(clients.Firestore), func() { _ = clients.Close() }, nil
}
