package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// EventInput is one ingestion envelope: the raw integration event plus the
// insight text produced for it upstream.
type EventInput struct {
	OrganizationID uuid.UUID
	Integration    domain.Integration
	EventType      string
	OccurredAt     time.Time
	Payload        map[string]any
	Insight        string
}

func (in EventInput) Validate() error {
	var errs []domain.FieldError

	if in.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if !in.Integration.IsValid() {
		errs = append(errs, domain.FieldError{Field: "integration", Message: "unknown integration"})
	}
	if strings.TrimSpace(in.EventType) == "" {
		errs = append(errs, domain.FieldError{Field: "event_type", Message: "required"})
	}
	if in.OccurredAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "occurred_at", Message: "required"})
	}
	if strings.TrimSpace(in.Insight) == "" {
		errs = append(errs, domain.FieldError{Field: "insight", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	return nil
}

func (in EventInput) rawEvent() domain.RawEvent {
	return domain.RawEvent{
		OrganizationID: in.OrganizationID,
		Integration:    in.Integration,
		EventType:      in.EventType,
		OccurredAt:     in.OccurredAt,
		Payload:        in.Payload,
	}
}
