package ingest

import (
	"context"
	"sync"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ whisperGenerator = &whisperGeneratorMock{}

type whisperGeneratorMock struct {
	GenerateFunc func(ctx context.Context, event *domain.TaggedEvent, insightText string) ([]domain.Whisper, error)

	calls struct {
		Generate []struct {
			Ctx         context.Context
			Event       *domain.TaggedEvent
			InsightText string
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *whisperGeneratorMock) Generate(ctx context.Context, event *domain.TaggedEvent, insightText string) ([]domain.Whisper, error) {
	if mock.GenerateFunc == nil {
		panic("whisperGeneratorMock.GenerateFunc: method is nil but whisperGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Event       *domain.TaggedEvent
		InsightText string
	}{Ctx: ctx, Event: event, InsightText: insightText}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, event, insightText)
}

func (mock *whisperGeneratorMock) GenerateCalls() []struct {
	Ctx         context.Context
	Event       *domain.TaggedEvent
	InsightText string
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
