package scope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// UpdateItems replaces the item set of a scope owned by the acting manager.
// Returns domain.ErrNotFound if the scope does not exist or belongs to
// another manager.
func (s *Service) UpdateItems(ctx context.Context, input UpdateItemsInput) (*domain.Scope, error) {
	managerID, ok := ctxutil.ManagerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	items := normalizeItems(input.Items)
	if len(items) > s.maxItems {
		return nil, domain.NewValidationError("items", fmt.Sprintf("max %d items", s.maxItems))
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.scopes.ReplaceItems(txCtx, managerID, input.ScopeID, items); err != nil {
			return fmt.Errorf("replace scope items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	scope, err := s.scopes.GetByID(ctx, input.OrganizationID, input.ScopeID)
	if err != nil {
		return nil, fmt.Errorf("reload scope: %w", err)
	}

	s.log.InfoContext(ctx, "scope items replaced",
		slog.String("scope_id", input.ScopeID.String()),
		slog.String("manager_id", managerID.String()),
		slog.Int("item_count", len(items)),
	)

	return scope, nil
}
