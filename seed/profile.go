package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openbook/chatseed/fixture"
	"github.com/openbook/chatseed/log"
)

// PatchProfile updates fields of an existing users document. It fails with
// store.ErrNotFound when the user has no document.
func (s *Seeder) PatchProfile(ctx context.Context, uid string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.Update(ctx, userPath(uid), fields); err != nil {
		return fmt.Errorf("patch profile %s: %w", uid, err)
	}
	return nil
}

// PatchProfiles applies patches in order, logging and skipping failures.
// It returns how many patches were applied.
func (s *Seeder) PatchProfiles(ctx context.Context, patches []fixture.ProfilePatch) (int, error) {
	logger := log.LoggerFromContext(ctx)

	applied := 0
	for _, p := range patches {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if err := s.PatchProfile(ctx, p.UID, p.Fields); err != nil {
			logger.Error("error updating profile",
				slog.String(log.SeededUserIDLogField, p.UID),
				slog.String(log.ErrorMsgLogField, err.Error()),
			)
			continue
		}
		applied++
		logger.Info("profile updated", slog.String(log.SeededUserIDLogField, p.UID), slog.Int("fields", len(p.Fields)))
	}
	return applied, nil
}
