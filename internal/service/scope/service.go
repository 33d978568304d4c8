package scope

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

const (
	// DefaultMaxScopeItems caps the item set of one scope when the service
	// is constructed without an explicit limit.
	DefaultMaxScopeItems = 50

	// MaxItemIDLength is the longest accepted platform identifier.
	MaxItemIDLength = 255
)

type scopeRepo interface {
	GetByID(ctx context.Context, orgID, scopeID uuid.UUID) (*domain.Scope, error)
	GetActiveForManager(ctx context.Context, orgID, managerID uuid.UUID, integration domain.Integration) (*domain.Scope, error)
	List(ctx context.Context, orgID uuid.UUID, managerID *uuid.UUID) ([]*domain.Scope, error)
	Create(ctx context.Context, scope *domain.Scope) (*domain.Scope, error)
	ReplaceItems(ctx context.Context, managerID, scopeID uuid.UUID, items []domain.ItemRef) error
	Deactivate(ctx context.Context, managerID, scopeID uuid.UUID) error
	Delete(ctx context.Context, managerID, scopeID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides scope registry management for managers.
type Service struct {
	scopes   scopeRepo
	tx       txManager
	maxItems int
	log      *slog.Logger
}

// NewService creates a new Scope service. maxItems <= 0 falls back to
// DefaultMaxScopeItems.
func NewService(
	log *slog.Logger,
	scopes scopeRepo,
	tx txManager,
	maxItems int,
) *Service {
	if maxItems <= 0 {
		maxItems = DefaultMaxScopeItems
	}
	return &Service{
		scopes:   scopes,
		tx:       tx,
		maxItems: maxItems,
		log:      log.With("service", "scope"),
	}
}

// normalizeItems trims item ids and collapses duplicates preserving order.
func normalizeItems(items []domain.ItemRef) []domain.ItemRef {
	out := make([]domain.ItemRef, 0, len(items))
	for _, item := range items {
		item.ItemID = strings.TrimSpace(item.ItemID)
		out = append(out, item)
	}
	return domain.DedupeItems(out)
}
