package domain

import (
	"time"

	"github.com/google/uuid"
)

// RawEvent is an integration event as handed over by the ingestion layer,
// before tagging. Payload carries the integration's own fields untouched;
// identifier extraction reads only the fields named in extract.go.
type RawEvent struct {
	OrganizationID uuid.UUID
	Integration    Integration
	EventType      string
	OccurredAt     time.Time
	Payload        map[string]any
}

// TaggedEvent is a persisted integration event annotated with the scope
// matches computed at tagging time.
type TaggedEvent struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Integration    Integration
	EventType      string
	OccurredAt     time.Time
	Payload        map[string]any
	Status         EventStatus
	ScopeMatches   []ScopeMatch
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasMatches reports whether any scope matched the event.
func (e *TaggedEvent) HasMatches() bool {
	return len(e.ScopeMatches) > 0
}

// SourceItems returns the identifiers the event matched through, for
// provenance on scoped whispers.
func (e *TaggedEvent) SourceItems() []ItemRef {
	return ExtractIdentifiers(e.Integration, e.Payload)
}
