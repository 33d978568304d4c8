// Package ingest runs the event pipeline: validate the envelope, tag the
// event against the organization's scopes, generate whispers, advance the
// event's status. One synchronous run per event; batches are independent
// runs with per-item error isolation.
package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// DefaultMaxInsightChars caps the insight text length when no limit is
// configured.
const DefaultMaxInsightChars = 8000

type eventTagger interface {
	Tag(ctx context.Context, raw domain.RawEvent) (*domain.TaggedEvent, error)
}

type whisperGenerator interface {
	Generate(ctx context.Context, event *domain.TaggedEvent, insightText string) ([]domain.Whisper, error)
}

type eventStatusStore interface {
	UpdateStatus(ctx context.Context, integration domain.Integration, eventID uuid.UUID, next domain.EventStatus, allowedFrom ...domain.EventStatus) error
}

// Service orchestrates the ingestion pipeline.
type Service struct {
	tagger          eventTagger
	whispers        whisperGenerator
	events          eventStatusStore
	maxInsightChars int
	log             *slog.Logger
}

// NewService creates a new Ingest service. maxInsightChars <= 0 falls back
// to DefaultMaxInsightChars.
func NewService(
	log *slog.Logger,
	tagger eventTagger,
	whispers whisperGenerator,
	events eventStatusStore,
	maxInsightChars int,
) *Service {
	if maxInsightChars <= 0 {
		maxInsightChars = DefaultMaxInsightChars
	}

	return &Service{
		tagger:          tagger,
		whispers:        whispers,
		events:          events,
		maxInsightChars: maxInsightChars,
		log:             log.With("service", "ingest"),
	}
}
