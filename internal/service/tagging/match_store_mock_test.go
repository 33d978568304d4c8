package tagging

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ matchStore = &matchStoreMock{}

type matchStoreMock struct {
	FindMatchingFunc func(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error)

	calls struct {
		FindMatching []struct {
			Ctx         context.Context
			OrgID       uuid.UUID
			Identifiers []domain.ItemRef
		}
	}
	lockFindMatching sync.RWMutex
}

func (mock *matchStoreMock) FindMatching(ctx context.Context, orgID uuid.UUID, identifiers []domain.ItemRef) ([]domain.ScopeMatch, error) {
	if mock.FindMatchingFunc == nil {
		panic("matchStoreMock.FindMatchingFunc: method is nil but matchStore.FindMatching was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		OrgID       uuid.UUID
		Identifiers []domain.ItemRef
	}{Ctx: ctx, OrgID: orgID, Identifiers: identifiers}
	mock.lockFindMatching.Lock()
	mock.calls.FindMatching = append(mock.calls.FindMatching, callInfo)
	mock.lockFindMatching.Unlock()
	return mock.FindMatchingFunc(ctx, orgID, identifiers)
}

func (mock *matchStoreMock) FindMatchingCalls() []struct {
	Ctx         context.Context
	OrgID       uuid.UUID
	Identifiers []domain.ItemRef
} {
	mock.lockFindMatching.RLock()
	calls := mock.calls.FindMatching
	mock.lockFindMatching.RUnlock()
	return calls
}
