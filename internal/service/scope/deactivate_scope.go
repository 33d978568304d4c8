package scope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// DeactivateScope retires a scope owned by the acting manager. Deactivating
// an already inactive scope is a no-op; existing scope matches on tagged
// events are snapshots and stay untouched.
func (s *Service) DeactivateScope(ctx context.Context, scopeID uuid.UUID) error {
	managerID, ok := ctxutil.ManagerIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if scopeID == uuid.Nil {
		return domain.NewValidationError("scope_id", "required")
	}

	if err := s.scopes.Deactivate(ctx, managerID, scopeID); err != nil {
		return fmt.Errorf("deactivate scope: %w", err)
	}

	s.log.InfoContext(ctx, "scope deactivated",
		slog.String("scope_id", scopeID.String()),
		slog.String("manager_id", managerID.String()),
	)

	return nil
}
