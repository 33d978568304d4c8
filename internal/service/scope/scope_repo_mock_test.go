package scope

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

var _ scopeRepo = &scopeRepoMock{}

type scopeRepoMock struct {
	GetByIDFunc             func(ctx context.Context, orgID, scopeID uuid.UUID) (*domain.Scope, error)
	GetActiveForManagerFunc func(ctx context.Context, orgID, managerID uuid.UUID, integration domain.Integration) (*domain.Scope, error)
	ListFunc                func(ctx context.Context, orgID uuid.UUID, managerID *uuid.UUID) ([]*domain.Scope, error)
	CreateFunc              func(ctx context.Context, scope *domain.Scope) (*domain.Scope, error)
	ReplaceItemsFunc        func(ctx context.Context, managerID, scopeID uuid.UUID, items []domain.ItemRef) error
	DeactivateFunc          func(ctx context.Context, managerID, scopeID uuid.UUID) error
	DeleteFunc              func(ctx context.Context, managerID, scopeID uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx     context.Context
			OrgID   uuid.UUID
			ScopeID uuid.UUID
		}
		GetActiveForManager []struct {
			Ctx         context.Context
			OrgID       uuid.UUID
			ManagerID   uuid.UUID
			Integration domain.Integration
		}
		List []struct {
			Ctx       context.Context
			OrgID     uuid.UUID
			ManagerID *uuid.UUID
		}
		Create []struct {
			Ctx   context.Context
			Scope *domain.Scope
		}
		ReplaceItems []struct {
			Ctx       context.Context
			ManagerID uuid.UUID
			ScopeID   uuid.UUID
			Items     []domain.ItemRef
		}
		Deactivate []struct {
			Ctx       context.Context
			ManagerID uuid.UUID
			ScopeID   uuid.UUID
		}
		Delete []struct {
			Ctx       context.Context
			ManagerID uuid.UUID
			ScopeID   uuid.UUID
		}
	}
	lockGetByID             sync.RWMutex
	lockGetActiveForManager sync.RWMutex
	lockList                sync.RWMutex
	lockCreate              sync.RWMutex
	lockReplaceItems        sync.RWMutex
	lockDeactivate          sync.RWMutex
	lockDelete              sync.RWMutex
}

func (mock *scopeRepoMock) GetByID(ctx context.Context, orgID, scopeID uuid.UUID) (*domain.Scope, error) {
	if mock.GetByIDFunc == nil {
		panic("scopeRepoMock.GetByIDFunc: method is nil but scopeRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OrgID   uuid.UUID
		ScopeID uuid.UUID
	}{Ctx: ctx, OrgID: orgID, ScopeID: scopeID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, orgID, scopeID)
}

func (mock *scopeRepoMock) GetByIDCalls() []struct {
	Ctx     context.Context
	OrgID   uuid.UUID
	ScopeID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *scopeRepoMock) GetActiveForManager(ctx context.Context, orgID, managerID uuid.UUID, integration domain.Integration) (*domain.Scope, error) {
	if mock.GetActiveForManagerFunc == nil {
		panic("scopeRepoMock.GetActiveForManagerFunc: method is nil but scopeRepo.GetActiveForManager was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		OrgID       uuid.UUID
		ManagerID   uuid.UUID
		Integration domain.Integration
	}{Ctx: ctx, OrgID: orgID, ManagerID: managerID, Integration: integration}
	mock.lockGetActiveForManager.Lock()
	mock.calls.GetActiveForManager = append(mock.calls.GetActiveForManager, callInfo)
	mock.lockGetActiveForManager.Unlock()
	return mock.GetActiveForManagerFunc(ctx, orgID, managerID, integration)
}

func (mock *scopeRepoMock) GetActiveForManagerCalls() []struct {
	Ctx         context.Context
	OrgID       uuid.UUID
	ManagerID   uuid.UUID
	Integration domain.Integration
} {
	mock.lockGetActiveForManager.RLock()
	calls := mock.calls.GetActiveForManager
	mock.lockGetActiveForManager.RUnlock()
	return calls
}

func (mock *scopeRepoMock) List(ctx context.Context, orgID uuid.UUID, managerID *uuid.UUID) ([]*domain.Scope, error) {
	if mock.ListFunc == nil {
		panic("scopeRepoMock.ListFunc: method is nil but scopeRepo.List was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OrgID     uuid.UUID
		ManagerID *uuid.UUID
	}{Ctx: ctx, OrgID: orgID, ManagerID: managerID}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, orgID, managerID)
}

func (mock *scopeRepoMock) ListCalls() []struct {
	Ctx       context.Context
	OrgID     uuid.UUID
	ManagerID *uuid.UUID
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *scopeRepoMock) Create(ctx context.Context, scope *domain.Scope) (*domain.Scope, error) {
	if mock.CreateFunc == nil {
		panic("scopeRepoMock.CreateFunc: method is nil but scopeRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope *domain.Scope
	}{Ctx: ctx, Scope: scope}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, scope)
}

func (mock *scopeRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Scope *domain.Scope
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *scopeRepoMock) ReplaceItems(ctx context.Context, managerID, scopeID uuid.UUID, items []domain.ItemRef) error {
	if mock.ReplaceItemsFunc == nil {
		panic("scopeRepoMock.ReplaceItemsFunc: method is nil but scopeRepo.ReplaceItems was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ManagerID uuid.UUID
		ScopeID   uuid.UUID
		Items     []domain.ItemRef
	}{Ctx: ctx, ManagerID: managerID, ScopeID: scopeID, Items: items}
	mock.lockReplaceItems.Lock()
	mock.calls.ReplaceItems = append(mock.calls.ReplaceItems, callInfo)
	mock.lockReplaceItems.Unlock()
	return mock.ReplaceItemsFunc(ctx, managerID, scopeID, items)
}

func (mock *scopeRepoMock) ReplaceItemsCalls() []struct {
	Ctx       context.Context
	ManagerID uuid.UUID
	ScopeID   uuid.UUID
	Items     []domain.ItemRef
} {
	mock.lockReplaceItems.RLock()
	calls := mock.calls.ReplaceItems
	mock.lockReplaceItems.RUnlock()
	return calls
}

func (mock *scopeRepoMock) Deactivate(ctx context.Context, managerID, scopeID uuid.UUID) error {
	if mock.DeactivateFunc == nil {
		panic("scopeRepoMock.DeactivateFunc: method is nil but scopeRepo.Deactivate was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ManagerID uuid.UUID
		ScopeID   uuid.UUID
	}{Ctx: ctx, ManagerID: managerID, ScopeID: scopeID}
	mock.lockDeactivate.Lock()
	mock.calls.Deactivate = append(mock.calls.Deactivate, callInfo)
	mock.lockDeactivate.Unlock()
	return mock.DeactivateFunc(ctx, managerID, scopeID)
}

func (mock *scopeRepoMock) DeactivateCalls() []struct {
	Ctx       context.Context
	ManagerID uuid.UUID
	ScopeID   uuid.UUID
} {
	mock.lockDeactivate.RLock()
	calls := mock.calls.Deactivate
	mock.lockDeactivate.RUnlock()
	return calls
}

func (mock *scopeRepoMock) Delete(ctx context.Context, managerID, scopeID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("scopeRepoMock.DeleteFunc: method is nil but scopeRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ManagerID uuid.UUID
		ScopeID   uuid.UUID
	}{Ctx: ctx, ManagerID: managerID, ScopeID: scopeID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, managerID, scopeID)
}

func (mock *scopeRepoMock) DeleteCalls() []struct {
	Ctx       context.Context
	ManagerID uuid.UUID
	ScopeID   uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
