package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemRef is an (item id, item type) pair. The same shape serves as a scope
// item, an identifier extracted from an event payload, and a whisper source
// item.
type ItemRef struct {
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`
}

// Scope is one manager's visibility grant for one integration: the set of
// users, channels and groups whose events that manager is entitled to see.
type Scope struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ManagerID      uuid.UUID
	Integration    Integration
	Items          []ItemRef
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contains reports whether the scope grants visibility over the item.
func (s *Scope) Contains(ref ItemRef) bool {
	for _, item := range s.Items {
		if item == ref {
			return true
		}
	}
	return false
}

// DedupeItems collapses duplicate (item id, item type) pairs preserving
// first-seen order.
func DedupeItems(items []ItemRef) []ItemRef {
	if len(items) < 2 {
		return items
	}
	seen := make(map[ItemRef]struct{}, len(items))
	out := make([]ItemRef, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ScopeMatch records that an event fell inside a manager's scope at tagging
// time. Matches are snapshots: deactivating or editing the scope later never
// rewrites them.
type ScopeMatch struct {
	ScopeID        uuid.UUID `json:"scope_id"`
	ManagerID      uuid.UUID `json:"manager_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
}
