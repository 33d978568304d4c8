package ingest

import (
	"context"
	"sync"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ eventTagger = &eventTaggerMock{}

type eventTaggerMock struct {
	TagFunc func(ctx context.Context, raw domain.RawEvent) (*domain.TaggedEvent, error)

	calls struct {
		Tag []struct {
			Ctx context.Context
			Raw domain.RawEvent
		}
	}
	lockTag sync.RWMutex
}

func (mock *eventTaggerMock) Tag(ctx context.Context, raw domain.RawEvent) (*domain.TaggedEvent, error) {
	if mock.TagFunc == nil {
		panic("eventTaggerMock.TagFunc: method is nil but eventTagger.Tag was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Raw domain.RawEvent
	}{Ctx: ctx, Raw: raw}
	mock.lockTag.Lock()
	mock.calls.Tag = append(mock.calls.Tag, callInfo)
	mock.lockTag.Unlock()
	return mock.TagFunc(ctx, raw)
}

func (mock *eventTaggerMock) TagCalls() []struct {
	Ctx context.Context
	Raw domain.RawEvent
} {
	mock.lockTag.RLock()
	calls := mock.calls.Tag
	mock.lockTag.RUnlock()
	return calls
}
