package whisper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// ListForManager returns the page of whispers the manager may see: whispers
// scoped to them plus org-wide ones. Admins see every whisper in the
// organization. The second return value is the total match count before
// paging.
func (s *Service) ListForManager(ctx context.Context, orgID, managerID uuid.UUID, admin bool, filter domain.WhisperFilter) ([]domain.Whisper, int, error) {
	if orgID == uuid.Nil {
		return nil, 0, domain.NewValidationError("organization_id", "required")
	}
	if !admin && managerID == uuid.Nil {
		return nil, 0, domain.NewValidationError("manager_id", "required")
	}

	if admin {
		filter.VisibleTo = nil
	} else {
		filter.VisibleTo = &managerID
	}

	whispers, total, err := s.whispers.List(ctx, orgID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list whispers: %w", err)
	}

	return whispers, total, nil
}

// GetByID returns a whisper by primary key within the organization.
func (s *Service) GetByID(ctx context.Context, orgID, whisperID uuid.UUID) (*domain.Whisper, error) {
	if err := requireWhisperIDs(orgID, whisperID); err != nil {
		return nil, err
	}

	w, err := s.whispers.GetByID(ctx, orgID, whisperID)
	if err != nil {
		return nil, fmt.Errorf("get whisper: %w", err)
	}

	return w, nil
}

// ListForEvent returns every whisper fanned out from a single event, oldest
// first.
func (s *Service) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Whisper, error) {
	if eventID == uuid.Nil {
		return nil, domain.NewValidationError("event_id", "required")
	}

	whispers, err := s.whispers.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list whispers by event: %w", err)
	}

	return whispers, nil
}
