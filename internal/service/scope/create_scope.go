package scope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
)

// CreateScope creates an active scope for the acting manager. A manager may
// hold at most one active scope per (organization, integration) pair;
// violating that returns domain.ErrAlreadyExists.
func (s *Service) CreateScope(ctx context.Context, input CreateScopeInput) (*domain.Scope, error) {
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

	// Pre-check for a friendlier error than the unique-index violation the
	// insert would produce. The index still backstops concurrent creates.
	existing, err := s.scopes.GetActiveForManager(ctx, input.OrganizationID, managerID, input.Integration)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check active scope: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("active %s scope %s: %w", input.Integration, existing.ID, domain.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	scope := &domain.Scope{
		ID:             uuid.New(),
		OrganizationID: input.OrganizationID,
		ManagerID:      managerID,
		Integration:    input.Integration,
		Items:          items,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var created *domain.Scope
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.scopes.Create(txCtx, scope)
		if createErr != nil {
			return fmt.Errorf("create scope: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "scope created",
		slog.String("scope_id", created.ID.String()),
		slog.String("manager_id", managerID.String()),
		slog.String("integration", input.Integration.String()),
		slog.Int("item_count", len(items)),
	)

	return created, nil
}
