package domain

import (
	"time"

	"github.com/google/uuid"
)

// Whisper is the user-visible insight record produced by the fan-out engine.
// A whisper either carries ScopeInfo (visible to that manager) or none
// (organization-wide, visible to every manager in the organization).
type Whisper struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	EventID        uuid.UUID
	Integration    Integration
	Title          string
	Category       Category
	Priority       Priority
	Content        WhisperContent
	ScopeInfo      *ScopeInfo
	Status         WhisperStatus
	Feedback       *Feedback
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WhisperContent is the classified insight body.
type WhisperContent struct {
	Message          string   `json:"message"`
	SuggestedActions []string `json:"suggested_actions"`
	Rationale        *string  `json:"rationale,omitempty"`
}

// ScopeInfo ties a whisper to the scope match that produced it.
type ScopeInfo struct {
	ManagerID   uuid.UUID   `json:"manager_id"`
	ScopeID     uuid.UUID   `json:"scope_id"`
	Integration Integration `json:"integration"`
	SourceItems []ItemRef   `json:"source_items,omitempty"`
}

// Feedback is a reader's post-hoc assessment of a delivered whisper.
type Feedback struct {
	Helpful     bool      `json:"helpful"`
	Comment     *string   `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// IsOrgWide reports whether the whisper is visible to the whole organization
// rather than a single manager.
func (w *Whisper) IsOrgWide() bool {
	return w.ScopeInfo == nil
}

// VisibleTo reports whether a reader may see the whisper. Admins see
// everything in their organization; managers see their own scoped whispers
// plus organization-wide ones.
func (w *Whisper) VisibleTo(managerID uuid.UUID, admin bool) bool {
	if admin || w.IsOrgWide() {
		return true
	}
	return w.ScopeInfo.ManagerID == managerID
}
