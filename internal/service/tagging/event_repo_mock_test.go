package tagging

import (
	"context"
	"sync"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	InsertFunc func(ctx context.Context, event *domain.TaggedEvent) (*domain.TaggedEvent, error)

	calls struct {
		Insert []struct {
			Ctx   context.Context
			Event *domain.TaggedEvent
		}
	}
	lockInsert sync.RWMutex
}

func (mock *eventRepoMock) Insert(ctx context.Context, event *domain.TaggedEvent) (*domain.TaggedEvent, error) {
	if mock.InsertFunc == nil {
		panic("eventRepoMock.InsertFunc: method is nil but eventRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event *domain.TaggedEvent
	}{Ctx: ctx, Event: event}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, event)
}

func (mock *eventRepoMock) InsertCalls() []struct {
	Ctx   context.Context
	Event *domain.TaggedEvent
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}
