// Package whisper generates and manages whispers: the manager-facing insight
// records produced from tagged events. Classification and fan-out are
// deterministic; a tagged event plus an insight text always yields the same
// set of whispers.
package whisper

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

type whisperRepo interface {
	Create(ctx context.Context, w domain.Whisper) (domain.Whisper, error)
	UpdateStatus(ctx context.Context, orgID, whisperID uuid.UUID, next domain.WhisperStatus, allowedFrom ...domain.WhisperStatus) error
	AttachFeedback(ctx context.Context, orgID, whisperID uuid.UUID, feedback domain.Feedback) error
	GetByID(ctx context.Context, orgID, whisperID uuid.UUID) (*domain.Whisper, error)
	List(ctx context.Context, orgID uuid.UUID, filter domain.WhisperFilter) ([]domain.Whisper, int, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Whisper, error)
}

// Service turns tagged events into whispers and manages their delivery
// lifecycle.
type Service struct {
	whispers whisperRepo
	log      *slog.Logger
}

// NewService creates a new Whisper service.
func NewService(log *slog.Logger, whispers whisperRepo) *Service {
	return &Service{
		whispers: whispers,
		log:      log.With("service", "whisper"),
	}
}
