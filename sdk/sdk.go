// Package sdk initializes the Firebase Admin SDK clients shared by the tools.
package sdk

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/openbook/chatseed/config"
)

type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Open validates the credentials and connects to Firestore and Firebase
// Authentication. No client is created when the key file is missing.
func Open(ctx context.Context, cfg *config.Config) (*Clients, error) {
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}

	var fbConfig *firebase.Config
	if projectID := ProjectID(ctx, cfg); projectID != "" {
		fbConfig = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("error getting Auth client: %w", err)
	}
	return &Clients{Firestore: firestoreClient, Auth: authClient}, nil
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}

// ProjectID returns the configured project, falling back to the metadata
// server when running on GCP. Empty means the SDK infers it from the key file.
func ProjectID(ctx context.Context, cfg *config.Config) string {
	if cfg.ProjectID != "" {
		return cfg.ProjectID
	}
	if !metadata.OnGCE() {
		return ""
	}
	projectID, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		return ""
	}
	return projectID
}
