package scope

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// ListScopes returns the organization's scopes, newest first. With onlyMine
// set, the listing is narrowed to scopes owned by the acting manager.
func (s *Service) ListScopes(ctx context.Context, orgID uuid.UUID, onlyMine bool) ([]*domain.Scope, error) {
	managerID, ok := ctxutil.ManagerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var managerFilter *uuid.UUID
	if onlyMine {
		managerFilter = &managerID
	}

	scopes, err := s.scopes.List(ctx, orgID, managerFilter)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}

	return scopes, nil
}
