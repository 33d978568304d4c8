package whisper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// MarkDelivered moves a pending whisper to delivered.
func (s *Service) MarkDelivered(ctx context.Context, orgID, whisperID uuid.UUID) error {
	if err := requireWhisperIDs(orgID, whisperID); err != nil {
		return err
	}

	err := s.whispers.UpdateStatus(ctx, orgID, whisperID, domain.WhisperStatusDelivered, domain.WhisperStatusPending)
	if err != nil {
		return fmt.Errorf("mark whisper delivered: %w", err)
	}

	s.log.InfoContext(ctx, "whisper delivered", slog.String("whisper_id", whisperID.String()))

	return nil
}

// MarkFailed moves a pending whisper to failed after a delivery attempt gave
// up on it.
func (s *Service) MarkFailed(ctx context.Context, orgID, whisperID uuid.UUID) error {
	if err := requireWhisperIDs(orgID, whisperID); err != nil {
		return err
	}

	err := s.whispers.UpdateStatus(ctx, orgID, whisperID, domain.WhisperStatusFailed, domain.WhisperStatusPending)
	if err != nil {
		return fmt.Errorf("mark whisper failed: %w", err)
	}

	s.log.InfoContext(ctx, "whisper marked failed", slog.String("whisper_id", whisperID.String()))

	return nil
}

// Archive retires a whisper. Archived is terminal: every non-archived status
// may move here and nothing leaves.
func (s *Service) Archive(ctx context.Context, orgID, whisperID uuid.UUID) error {
	if err := requireWhisperIDs(orgID, whisperID); err != nil {
		return err
	}

	err := s.whispers.UpdateStatus(ctx, orgID, whisperID, domain.WhisperStatusArchived,
		domain.WhisperStatusPending, domain.WhisperStatusDelivered, domain.WhisperStatusFailed)
	if err != nil {
		return fmt.Errorf("archive whisper: %w", err)
	}

	s.log.InfoContext(ctx, "whisper archived", slog.String("whisper_id", whisperID.String()))

	return nil
}

// AttachFeedback records reader feedback on a delivered whisper.
// Resubmitting overwrites the previous feedback.
func (s *Service) AttachFeedback(ctx context.Context, orgID, whisperID uuid.UUID, helpful bool, comment *string) error {
	if err := requireWhisperIDs(orgID, whisperID); err != nil {
		return err
	}

	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	feedback := domain.Feedback{
		Helpful:     helpful,
		Comment:     comment,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.whispers.AttachFeedback(ctx, orgID, whisperID, feedback); err != nil {
		return fmt.Errorf("attach feedback: %w", err)
	}

	s.log.InfoContext(ctx, "feedback attached",
		slog.String("whisper_id", whisperID.String()),
		slog.Bool("helpful", helpful),
	)

	return nil
}

func requireWhisperIDs(orgID, whisperID uuid.UUID) error {
	errs := make([]domain.FieldError, 0, 2)
	if orgID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if whisperID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "whisper_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
