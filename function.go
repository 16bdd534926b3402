package chatseed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/openbook/chatseed/auth"
	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/contract"
	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
	"github.com/openbook/chatseed/logger"
	"github.com/openbook/chatseed/sdk"
	"github.com/openbook/chatseed/seed"
	"github.com/openbook/chatseed/store"
)

const (
	defaultPlan  = "default"
	maxBodyBytes = 1 << 16
)

func init() {
	functions.HTTP("Seed", Seed)
}

// Seed runs the fixture seeder for an authenticated admin.
func Seed(w http.ResponseWriter, r *http.Request) {
	cfg := config.Load()
	ctx, closeLogs := logger.Setup(r.Context(), cfg, os.Stdout)
	defer closeLogs()
	logger := log.LoggerFromContext(ctx)
	logger.Info("seed function called")

	if !allowMethod(w, r, logger) {
		return
	}

	clients, err := sdk.Open(ctx, cfg)
	if err != nil {
		logger.Error("error while initializing firebase", slog.String(log.ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer clients.Close()

	h := &handler{
		verifier: clients.Auth,
		db:       store.NewFirestore(clients.Firestore),
		dryRun:   cfg.DryRun,
	}
	h.ServeHTTP(w, r.WithContext(ctx))
}

type handler struct {
	verifier auth.TokenVerifier
	db       seed.Store
	dryRun   bool
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	if !allowMethod(w, r, logger) {
		return
	}

	token, err := auth.Authenticate(r, h.verifier)
	if err != nil {
		logger.Error("error while authenticating", slog.String(log.ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(log.UserIDLogField, token.UID))
	ctx = log.WithLogger(ctx, logger)

	var req contract.SeedRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Error("error while decoding request", slog.String(log.ErrorMsgLogField, err.Error()))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Plan != "" && req.Plan != defaultPlan {
		logger.Error("unknown plan", slog.String("plan", req.Plan))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	db := h.db
	dryRun := h.dryRun || req.DryRun
	if dryRun {
		db = store.NewMemory()
	}

	report, err := seed.New(db).Run(ctx, fixture.Default())
	if err != nil {
		logger.Error("error while seeding", slog.String(log.ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logger.Info("seeding done",
		slog.Int("users", report.Users),
		slog.Int("chats", len(report.ChatIDs)),
		slog.Int("messages", report.Messages),
		slog.Bool("dryRun", dryRun),
	)

	writeJSON(ctx, w, contract.SeedResponse{
		RunID:    log.RunIDFromContext(ctx),
		Users:    report.Users,
		ChatIDs:  report.ChatIDs,
		Messages: report.Messages,
		DryRun:   dryRun,
	})
}

// allowMethod rejects anything but POST before clients are opened.
func allowMethod(w http.ResponseWriter, r *http.Request, logger *slog.Logger) bool {
	if r.Method == http.MethodPost {
		return true
	}
	logger.Error("invalid method: " + r.Method)
	http.Error(w, "Method Not Implemented", http.StatusNotImplemented)
	return false
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.LoggerFromContext(ctx).Error("error while writing response", slog.String(log.ErrorMsgLogField, err.Error()))
	}
}
