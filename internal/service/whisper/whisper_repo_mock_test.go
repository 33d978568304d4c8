package whisper

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ whisperRepo = &whisperRepoMock{}

type whisperRepoMock struct {
	CreateFunc         func(ctx context.Context, w domain.Whisper) (domain.Whisper, error)
	UpdateStatusFunc   func(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID, next domain.WhisperStatus, allowedFrom ...domain.WhisperStatus) error
	AttachFeedbackFunc func(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID, feedback domain.Feedback) error
	GetByIDFunc        func(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID) (*domain.Whisper, error)
	ListFunc           func(ctx context.Context, orgID uuid.UUID, filter domain.WhisperFilter) ([]domain.Whisper, int, error)
	ListByEventFunc    func(ctx context.Context, eventID uuid.UUID) ([]domain.Whisper, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			W   domain.Whisper
		}
		UpdateStatus []struct {
			Ctx         context.Context
			OrgID       uuid.UUID
			WhisperID   uuid.UUID
			Next        domain.WhisperStatus
			AllowedFrom []domain.WhisperStatus
		}
		AttachFeedback []struct {
			Ctx       context.Context
			OrgID     uuid.UUID
			WhisperID uuid.UUID
			Feedback  domain.Feedback
		}
		GetByID []struct {
			Ctx       context.Context
			OrgID     uuid.UUID
			WhisperID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			Filter domain.WhisperFilter
		}
		ListByEvent []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
	}
	lockCreate         sync.RWMutex
	lockUpdateStatus   sync.RWMutex
	lockAttachFeedback sync.RWMutex
	lockGetByID        sync.RWMutex
	lockList           sync.RWMutex
	lockListByEvent    sync.RWMutex
}

func (mock *whisperRepoMock) Create(ctx context.Context, w domain.Whisper) (domain.Whisper, error) {
	if mock.CreateFunc == nil {
		panic("whisperRepoMock.CreateFunc: method is nil but whisperRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   domain.Whisper
	}{Ctx: ctx, W: w}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, w)
}

func (mock *whisperRepoMock) CreateCalls() []struct {
	Ctx context.Context
	W   domain.Whisper
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *whisperRepoMock) UpdateStatus(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID, next domain.WhisperStatus, allowedFrom ...domain.WhisperStatus) error {
	if mock.UpdateStatusFunc == nil {
		panic("whisperRepoMock.UpdateStatusFunc: method is nil but whisperRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		OrgID       uuid.UUID
		WhisperID   uuid.UUID
		Next        domain.WhisperStatus
		AllowedFrom []domain.WhisperStatus
	}{Ctx: ctx, OrgID: orgID, WhisperID: whisperID, Next: next, AllowedFrom: allowedFrom}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, orgID, whisperID, next, allowedFrom...)
}

func (mock *whisperRepoMock) UpdateStatusCalls() []struct {
	Ctx         context.Context
	OrgID       uuid.UUID
	WhisperID   uuid.UUID
	Next        domain.WhisperStatus
	AllowedFrom []domain.WhisperStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *whisperRepoMock) AttachFeedback(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID, feedback domain.Feedback) error {
	if mock.AttachFeedbackFunc == nil {
		panic("whisperRepoMock.AttachFeedbackFunc: method is nil but whisperRepo.AttachFeedback was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OrgID     uuid.UUID
		WhisperID uuid.UUID
		Feedback  domain.Feedback
	}{Ctx: ctx, OrgID: orgID, WhisperID: whisperID, Feedback: feedback}
	mock.lockAttachFeedback.Lock()
	mock.calls.AttachFeedback = append(mock.calls.AttachFeedback, callInfo)
	mock.lockAttachFeedback.Unlock()
	return mock.AttachFeedbackFunc(ctx, orgID, whisperID, feedback)
}

func (mock *whisperRepoMock) AttachFeedbackCalls() []struct {
	Ctx       context.Context
	OrgID     uuid.UUID
	WhisperID uuid.UUID
	Feedback  domain.Feedback
} {
	mock.lockAttachFeedback.RLock()
	calls := mock.calls.AttachFeedback
	mock.lockAttachFeedback.RUnlock()
	return calls
}

func (mock *whisperRepoMock) GetByID(ctx context.Context, orgID uuid.UUID, whisperID uuid.UUID) (*domain.Whisper, error) {
	if mock.GetByIDFunc == nil {
		panic("whisperRepoMock.GetByIDFunc: method is nil but whisperRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OrgID     uuid.UUID
		WhisperID uuid.UUID
	}{Ctx: ctx, OrgID: orgID, WhisperID: whisperID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, orgID, whisperID)
}

func (mock *whisperRepoMock) GetByIDCalls() []struct {
	Ctx       context.Context
	OrgID     uuid.UUID
	WhisperID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *whisperRepoMock) List(ctx context.Context, orgID uuid.UUID, filter domain.WhisperFilter) ([]domain.Whisper, int, error) {
	if mock.ListFunc == nil {
		panic("whisperRepoMock.ListFunc: method is nil but whisperRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		Filter domain.WhisperFilter
	}{Ctx: ctx, OrgID: orgID, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, orgID, filter)
}

func (mock *whisperRepoMock) ListCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	Filter domain.WhisperFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *whisperRepoMock) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Whisper, error) {
	if mock.ListByEventFunc == nil {
		panic("whisperRepoMock.ListByEventFunc: method is nil but whisperRepo.ListByEvent was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{Ctx: ctx, EventID: eventID}
	mock.lockListByEvent.Lock()
	mock.calls.ListByEvent = append(mock.calls.ListByEvent, callInfo)
	mock.lockListByEvent.Unlock()
	return mock.ListByEventFunc(ctx, eventID)
}

func (mock *whisperRepoMock) ListByEventCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockListByEvent.RLock()
	calls := mock.calls.ListByEvent
	mock.lockListByEvent.RUnlock()
	return calls
}
