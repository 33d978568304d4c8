// Package tagging turns raw integration events into persisted, scope-tagged
// events. Tagging is the only write path into the event store: every event
// enters pending, carrying the scope matches computed at ingestion time.
package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/metrics"
)

type eventRepo interface {
	Insert(ctx context.Context, event *domain.TaggedEvent) (*domain.TaggedEvent, error)
}

type scopeMatcher interface {
	Match(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error)
}

// Service tags and persists incoming events.
type Service struct {
	events  eventRepo
	matcher scopeMatcher
	log     *slog.Logger
}

// NewService creates a new Tagging service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	matcher scopeMatcher,
) *Service {
	return &Service{
		events:  events,
		matcher: matcher,
		log:     log.With("service", "tagging"),
	}
}

// Tag validates the envelope, extracts identifiers, matches them against the
// organization's active scopes and persists the resulting TaggedEvent in
// status pending. Matches are snapshots: re-tagging the same envelope against
// an unchanged scope set yields identical matches.
func (s *Service) Tag(ctx context.Context, raw domain.RawEvent) (*domain.TaggedEvent, error) {
	if err := validateEnvelope(raw); err != nil {
		return nil, err
	}

	identifiers := domain.ExtractIdentifiers(raw.Integration, raw.Payload)

	matches, err := s.matcher.Match(ctx, raw.OrganizationID, identifiers)
	if err != nil {
		metrics.RecordEventFailed(raw.Integration.String(), "match")
		return nil, err
	}

	payload := raw.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	now := time.Now().UTC()
	event := &domain.TaggedEvent{
		ID:             uuid.New(),
		OrganizationID: raw.OrganizationID,
		Integration:    raw.Integration,
		EventType:      strings.TrimSpace(raw.EventType),
		OccurredAt:     raw.OccurredAt.UTC(),
		Payload:        payload,
		Status:         domain.EventStatusPending,
		ScopeMatches:   matches,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	inserted, err := s.events.Insert(ctx, event)
	if err != nil {
		metrics.RecordEventFailed(raw.Integration.String(), "persist")
		return nil, fmt.Errorf("insert event: %w", err)
	}

	metrics.RecordEventTagged(raw.Integration.String())
	metrics.RecordScopeMatches(len(matches))

	s.log.InfoContext(ctx, "event tagged",
		slog.String("event_id", inserted.ID.String()),
		slog.String("organization_id", raw.OrganizationID.String()),
		slog.String("integration", raw.Integration.String()),
		slog.Int("match_count", len(matches)),
	)

	return inserted, nil
}

// validateEnvelope checks the event envelope and collects all errors.
func validateEnvelope(raw domain.RawEvent) error {
	var errs []domain.FieldError

	if raw.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if !raw.Integration.IsValid() {
		errs = append(errs, domain.FieldError{Field: "integration", Message: fmt.Sprintf("unknown integration %q", raw.Integration)})
	}
	if strings.TrimSpace(raw.EventType) == "" {
		errs = append(errs, domain.FieldError{Field: "event_type", Message: "required"})
	}
	if raw.OccurredAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "occurred_at", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
