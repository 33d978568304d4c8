package tagging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

type matchStore interface {
	FindMatching(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error)
}

// Matcher resolves which of an organization's active scopes an event's
// identifiers fall into.
type Matcher struct {
	scopes matchStore
	log    *slog.Logger
}

// NewMatcher creates a new Matcher backed by the scope store.
func NewMatcher(log *slog.Logger, scopes matchStore) *Matcher {
	return &Matcher{
		scopes: scopes,
		log:    log.With("component", "matcher"),
	}
}

// Match returns one ScopeMatch per active scope containing at least one of
// the identifiers. Empty identifiers never reach the store. A store failure
// is returned as an error: the event's tagging fails instead of silently
// broadening visibility to the whole organization.
func (m *Matcher) Match(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error) {
	if len(identifiers) == 0 {
		return []domain.ScopeMatch{}, nil
	}

	matches, err := m.scopes.FindMatching(ctx, orgID, identifiers)
	if err != nil {
		m.log.ErrorContext(ctx, "scope match lookup failed",
			slog.String("organization_id", orgID.String()),
			slog.Int("identifier_count", len(identifiers)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("find matching scopes: %w", err)
	}

	return matches, nil
}
