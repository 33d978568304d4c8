package scope

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// GetScope returns a single scope in the organization. Reads are
// organization-wide; only mutations are restricted to the owning manager.
func (s *Service) GetScope(ctx context.Context, orgID, scopeID uuid.UUID) (*domain.Scope, error) {
	if _, ok := ctxutil.ManagerIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if scopeID == uuid.Nil {
		return nil, domain.NewValidationError("scope_id", "required")
	}

	scope, err := s.scopes.GetByID(ctx, orgID, scopeID)
	if err != nil {
		return nil, fmt.Errorf("get scope: %w", err)
	}

	return scope, nil
}
