package domain

// Integration identifies the third-party collaboration platform an event
// or scope belongs to. The set is closed: adding a platform means adding a
// constant here plus an extraction rule in extract.go and an event table.
type Integration string

const (
	IntegrationSlack   Integration = "slack"
	IntegrationTeams   Integration = "teams"
	IntegrationDiscord Integration = "discord"
	IntegrationGmail   Integration = "gmail"
	IntegrationGitHub  Integration = "github"
)

func (i Integration) String() string { return string(i) }

func (i Integration) IsValid() bool {
	switch i {
	case IntegrationSlack, IntegrationTeams, IntegrationDiscord, IntegrationGmail, IntegrationGitHub:
		return true
	}
	return false
}

// Integrations lists all supported integrations in stable order.
func Integrations() []Integration {
	return []Integration{
		IntegrationSlack,
		IntegrationTeams,
		IntegrationDiscord,
		IntegrationGmail,
		IntegrationGitHub,
	}
}

// ItemType classifies a scope item or extracted identifier.
type ItemType string

const (
	ItemTypeUser    ItemType = "user"
	ItemTypeChannel ItemType = "channel"
	ItemTypeGroup   ItemType = "group"
)

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeUser, ItemTypeChannel, ItemTypeGroup:
		return true
	}
	return false
}

// EventStatus represents the processing state of a tagged event.
// Transitions are monotonic: pending -> processing -> processed|failed.
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusProcessing EventStatus = "processing"
	EventStatusProcessed  EventStatus = "processed"
	EventStatusFailed     EventStatus = "failed"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPending, EventStatusProcessing, EventStatusProcessed, EventStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may advance to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusPending:
		return next == EventStatusProcessing || next == EventStatusFailed
	case EventStatusProcessing:
		return next == EventStatusProcessed || next == EventStatusFailed
	}
	return false
}

// Category classifies a whisper by the kind of signal it carries.
type Category string

const (
	CategoryWarning    Category = "warning"
	CategorySuggestion Category = "suggestion"
	CategoryAlert      Category = "alert"
	CategoryInsight    Category = "insight"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryWarning, CategorySuggestion, CategoryAlert, CategoryInsight:
		return true
	}
	return false
}

// Priority ranks whisper urgency on a 1..5 scale, 5 being the most urgent.
type Priority int

const (
	PriorityMinimal  Priority = 1
	PriorityLow      Priority = 2
	PriorityMedium   Priority = 3
	PriorityHigh     Priority = 4
	PriorityCritical Priority = 5
)

func (p Priority) IsValid() bool {
	return p >= PriorityMinimal && p <= PriorityCritical
}

// Label returns the human-readable name mirrored onto the numeric value.
func (p Priority) Label() string {
	switch p {
	case PriorityMinimal:
		return "minimal"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// WhisperStatus represents the delivery state of a whisper.
type WhisperStatus string

const (
	WhisperStatusPending   WhisperStatus = "pending"
	WhisperStatusDelivered WhisperStatus = "delivered"
	WhisperStatusFailed    WhisperStatus = "failed"
	WhisperStatusArchived  WhisperStatus = "archived"
)

func (s WhisperStatus) String() string { return string(s) }

func (s WhisperStatus) IsValid() bool {
	switch s {
	case WhisperStatusPending, WhisperStatusDelivered, WhisperStatusFailed, WhisperStatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may advance to next.
// Archived is terminal.
func (s WhisperStatus) CanTransitionTo(next WhisperStatus) bool {
	switch s {
	case WhisperStatusPending:
		return next == WhisperStatusDelivered || next == WhisperStatusFailed || next == WhisperStatusArchived
	case WhisperStatusDelivered, WhisperStatusFailed:
		return next == WhisperStatusArchived
	}
	return false
}
