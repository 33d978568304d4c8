package tagging

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ scopeMatcher = &scopeMatcherMock{}

type scopeMatcherMock struct {
	MatchFunc func(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error)

	calls struct {
		Match []struct {
			Ctx         context.Context
			OrgID       uuid.UUID
			Identifiers []domain.ItemRef
		}
	}
	lockMatch sync.RWMutex
}

func (mock *scopeMatcherMock) Match(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error) {
	if mock.MatchFunc == nil {
		panic("scopeMatcherMock.MatchFunc: method is nil but scopeMatcher.Match was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		OrgID       uuid.UUID
		Identifiers []domain.ItemRef
	}{Ctx: ctx, OrgID: orgID, Identifiers: identifiers}
	mock.lockMatch.Lock()
	mock.calls.Match = append(mock.calls.Match, callInfo)
	mock.lockMatch.Unlock()
	return mock.MatchFunc(ctx, orgID, identifiers)
}

func (mock *scopeMatcherMock) MatchCalls() []struct {
	Ctx         context.Context
	OrgID       uuid.UUID
	Identifiers []domain.ItemRef
} {
	mock.lockMatch.RLock()
	calls := mock.calls.Match
	mock.lockMatch.RUnlock()
	return calls
}
