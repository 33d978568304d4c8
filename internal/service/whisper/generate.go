package whisper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/metrics"
)

// Generate classifies the insight text and fans the resulting whisper out
// across the event's scope matches. Returns every whisper created for the
// event; on partial failure the created records are returned alongside the
// joined errors.
func (s *Service) Generate(ctx context.Context, event *domain.TaggedEvent, insightText string) ([]domain.Whisper, error) {
	if event == nil {
		return nil, domain.NewValidationError("event", "required")
	}

	classification := Classify(insightText)

	base := domain.Whisper{
		OrganizationID: event.OrganizationID,
		EventID:        event.ID,
		Integration:    event.Integration,
		Title:          classification.Title,
		Category:       classification.Category,
		Priority:       classification.Priority,
		Content: domain.WhisperContent{
			Message:          insightText,
			SuggestedActions: classification.SuggestedActions,
		},
		Status: domain.WhisperStatusPending,
	}

	create := func(ctx context.Context, w domain.Whisper) (domain.Whisper, error) {
		now := time.Now().UTC()
		w.ID = uuid.New()
		w.CreatedAt = now
		w.UpdatedAt = now

		stored, err := s.whispers.Create(ctx, w)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				metrics.RecordWhisperDuplicate()
			}
			return domain.Whisper{}, err
		}

		label := metrics.ScopeLabelScoped
		if stored.IsOrgWide() {
			label = metrics.ScopeLabelOrgWide
		}
		metrics.RecordWhisperCreated(label)

		return stored, nil
	}

	created, err := Fanout(ctx, base, event, create)
	if err != nil {
		return created, fmt.Errorf("fan out whispers for event %s: %w", event.ID, err)
	}

	s.log.InfoContext(ctx, "whispers generated",
		slog.String("event_id", event.ID.String()),
		slog.String("organization_id", event.OrganizationID.String()),
		slog.String("category", classification.Category.String()),
		slog.Int("count", len(created)),
	)

	return created, nil
}
