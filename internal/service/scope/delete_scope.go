package scope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// DeleteScope removes a scope owned by the acting manager together with its
// items. Returns domain.ErrNotFound if the scope does not exist or belongs
// to another manager.
func (s *Service) DeleteScope(ctx context.Context, scopeID uuid.UUID) error {
	managerID, ok := ctxutil.ManagerIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if scopeID == uuid.Nil {
		return domain.NewValidationError("scope_id", "required")
	}

	if err := s.scopes.Delete(ctx, managerID, scopeID); err != nil {
		return fmt.Errorf("delete scope: %w", err)
	}

	s.log.InfoContext(ctx, "scope deleted",
		slog.String("scope_id", scopeID.String()),
		slog.String("manager_id", managerID.String()),
	)

	return nil
}
