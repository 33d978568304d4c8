package domain

import "github.com/google/uuid"

// WhisperFilter contains filtering/pagination parameters for whisper listings.
// VisibleTo restricts results to one manager's view: their own scoped whispers
// plus organization-wide ones. nil means no visibility restriction.
type WhisperFilter struct {
	VisibleTo   *uuid.UUID
	Category    *Category
	Status      *WhisperStatus
	Integration *Integration
	MinPriority *Priority
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}
