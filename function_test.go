package chatseed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/store"
)

type staticVerifier struct {
	admin bool
}

func (v staticVerifier) VerifyIDToken(_ context.Context, _ string) (*firebaseauth.Token, error) {
	return &firebaseauth.Token{UID: "admin-uid", Claims: map[string]interface{}{"admin": v.admin}}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		admin          bool
		expectedStatus int
		expectedWrites bool
	}{
		{
			name:           "seeds default plan",
			method:         http.MethodPost,
			body:           `{"plan": "default"}`,
			admin:          true,
			expectedStatus: http.StatusOK,
			expectedWrites: true,
		},
		{
			name:           "empty body means default plan",
			method:         http.MethodPost,
			admin:          true,
			expectedStatus: http.StatusOK,
			expectedWrites: true,
		},
		{
			name:           "dry run leaves store untouched",
			method:         http.MethodPost,
			body:           `{"plan": "default", "dryRun": true}`,
			admin:          true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "misspelled dry run key is rejected",
			method:         http.MethodPost,
			body:           `{"dry_run": true}`,
			admin:          true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown plan",
			method:         http.MethodPost,
			body:           `{"plan": "production"}`,
			admin:          true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			method:         http.MethodPost,
			body:           `{"plan":`,
			admin:          true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an admin",
			method:         http.MethodPost,
			body:           `{}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			admin:          true,
			expectedStatus: http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := store.NewMemory()
			h := &handler{verifier: staticVerifier{admin: tt.admin}, db: db}

			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedWrites, len(db.Writes()) > 0)
			if rec.Code != http.StatusOK {
				return
			}
			var resp contract.SeedResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, 3, resp.Users)
			assert.Len(t, resp.ChatIDs, 3)
			assert.Equal(t, 9, resp.Messages)
			assert.Equal(t, !tt.expectedWrites, resp.DryRun)
		})
	}
}

func TestSeedRejectsMethodBeforeOpeningClients(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("SEED_USE_DEFAULT_CREDENTIALS", "")
	t.Setenv("SEED_CLOUD_LOGGING", "")

	rec := httptest.NewRecorder()
	Seed(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
