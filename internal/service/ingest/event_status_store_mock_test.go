package ingest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ eventStatusStore = &eventStatusStoreMock{}

type eventStatusStoreMock struct {
	UpdateStatusFunc func(ctx context.Context, integration domain.Integration, eventID uuid.UUID, next domain.EventStatus, allowedFrom ...domain.EventStatus) error

	calls struct {
		UpdateStatus []struct {
			Ctx         context.Context
			Integration domain.Integration
			EventID     uuid.UUID
			Next        domain.EventStatus
			AllowedFrom []domain.EventStatus
		}
	}
	lockUpdateStatus sync.RWMutex
}

func (mock *eventStatusStoreMock) UpdateStatus(ctx context.Context, integration domain.Integration, eventID uuid.UUID, next domain.EventStatus, allowedFrom ...domain.EventStatus) error {
	if mock.UpdateStatusFunc == nil {
		panic("eventStatusStoreMock.UpdateStatusFunc: method is nil but eventStatusStore.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Integration domain.Integration
		EventID     uuid.UUID
		Next        domain.EventStatus
		AllowedFrom []domain.EventStatus
	}{Ctx: ctx, Integration: integration, EventID: eventID, Next: next, AllowedFrom: allowedFrom}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, integration, eventID, next, allowedFrom...)
}

func (mock *eventStatusStoreMock) UpdateStatusCalls() []struct {
	Ctx         context.Context
	Integration domain.Integration
	EventID     uuid.UUID
	Next        domain.EventStatus
	AllowedFrom []domain.EventStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
