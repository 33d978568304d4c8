package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
	"github.com/lumeteam/whisper-backend/pkg/ctxutil"
	"github.com/lumeteam/whisper-backend/pkg/metrics"
)

// PipelineResult is the outcome of one pipeline run.
type PipelineResult struct {
	Event    *domain.TaggedEvent
	Whispers []domain.Whisper
}

// ProcessEvent runs the full pipeline for one event. The event moves
// pending -> processing -> processed; any stage failure marks it failed
// (best effort) and returns the error.
func (s *Service) ProcessEvent(ctx context.Context, in EventInput) (*PipelineResult, error) {
	started := time.Now()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(in.Insight) > s.maxInsightChars {
		return nil, domain.NewValidationError("insight",
			fmt.Sprintf("must be at most %d characters", s.maxInsightChars))
	}

	if ctxutil.RequestIDFromCtx(ctx) == "" {
		ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	}

	event, err := s.tagger.Tag(ctx, in.rawEvent())
	if err != nil {
		return nil, fmt.Errorf("tag event: %w", err)
	}

	err = s.events.UpdateStatus(ctx, event.Integration, event.ID, domain.EventStatusProcessing, domain.EventStatusPending)
	if err != nil {
		s.markFailed(ctx, event, "status")
		return nil, fmt.Errorf("advance event %s to processing: %w", event.ID, err)
	}
	event.Status = domain.EventStatusProcessing

	whispers, err := s.whispers.Generate(ctx, event, in.Insight)
	if err != nil {
		s.markFailed(ctx, event, "whisper")
		return nil, fmt.Errorf("generate whispers for event %s: %w", event.ID, err)
	}

	err = s.events.UpdateStatus(ctx, event.Integration, event.ID, domain.EventStatusProcessed, domain.EventStatusProcessing)
	if err != nil {
		s.markFailed(ctx, event, "status")
		return nil, fmt.Errorf("advance event %s to processed: %w", event.ID, err)
	}
	event.Status = domain.EventStatusProcessed

	metrics.RecordEventProcessed(event.Integration.String())
	metrics.RecordPipelineDuration(float64(time.Since(started).Milliseconds()))

	s.log.InfoContext(ctx, "event processed",
		slog.String("event_id", event.ID.String()),
		slog.String("organization_id", event.OrganizationID.String()),
		slog.String("integration", event.Integration.String()),
		slog.Int("whisper_count", len(whispers)),
	)

	return &PipelineResult{Event: event, Whispers: whispers}, nil
}

// markFailed moves the event to failed so operators can find and replay it.
// Best effort: a failure here is logged and the pipeline error still
// surfaces to the caller.
func (s *Service) markFailed(ctx context.Context, event *domain.TaggedEvent, stage string) {
	metrics.RecordEventFailed(event.Integration.String(), stage)

	err := s.events.UpdateStatus(ctx, event.Integration, event.ID, domain.EventStatusFailed,
		domain.EventStatusPending, domain.EventStatusProcessing)
	if err != nil {
		s.log.ErrorContext(ctx, "mark event failed",
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	event.Status = domain.EventStatusFailed
}
