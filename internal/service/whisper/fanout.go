package whisper

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// CreateFunc persists a single whisper copy and returns the stored record.
type CreateFunc func(ctx context.Context, w domain.Whisper) (domain.Whisper, error)

// Fanout distributes a base whisper across the event's scope matches. Zero
// matches produce one org-wide copy (nil ScopeInfo); otherwise each match
// gets its own copy addressed to the owning manager. Creation is best effort:
// one failing copy does not abort the rest, successes are returned alongside
// the joined failures. domain.ErrAlreadyExists counts as already present and
// is skipped, so replaying an event never errors on copies that exist.
func Fanout(ctx context.Context, base domain.Whisper, event *domain.TaggedEvent, create CreateFunc) ([]domain.Whisper, error) {
	if !event.HasMatches() {
		base.ScopeInfo = nil

		stored, err := create(ctx, base)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return []domain.Whisper{}, nil
			}
			return nil, fmt.Errorf("create org-wide whisper: %w", err)
		}
		return []domain.Whisper{stored}, nil
	}

	sourceItems := event.SourceItems()

	created := make([]domain.Whisper, 0, len(event.ScopeMatches))
	var errs []error
	for _, match := range event.ScopeMatches {
		w := base
		w.ScopeInfo = &domain.ScopeInfo{
			ManagerID:   match.ManagerID,
			ScopeID:     match.ScopeID,
			Integration: event.Integration,
			SourceItems: sourceItems,
		}

		stored, err := create(ctx, w)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			errs = append(errs, fmt.Errorf("create whisper for scope %s: %w", match.ScopeID, err))
			continue
		}
		created = append(created, stored)
	}

	return created, errors.Join(errs...)
}
