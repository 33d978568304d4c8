package whisper

import (
	"github.com/lumeteam/whisper-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByCreatedAt = "created_at"
	sortByPriority  = "priority"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalizeFilter applies defaults and clamps values.
func normalizeFilter(f domain.WhisperFilter) domain.WhisperFilter {
	switch f.SortBy {
	case sortByCreatedAt, sortByPriority:
		// valid
	default:
		f.SortBy = sortByCreatedAt
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderDESC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}
