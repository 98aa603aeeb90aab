package hierarchy

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ collectionRepo = &collectionRepoMock{}

type collectionRepoMock struct {
	SiblingsFunc       func(ctx context.Context, parentID uuid.UUID) ([]domain.Sibling, error)
	UpdatePositionFunc func(ctx context.Context, id uuid.UUID, position int) error
	ReorderFunc        func(ctx context.Context, items []domain.ReorderItem) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListByOwnerFunc    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Collection, error)
	CreateFunc         func(ctx context.Context, c *domain.Collection) (*domain.Collection, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, upd domain.CollectionUpdate) (*domain.Collection, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Siblings []struct {
			Ctx      context.Context
			ParentID uuid.UUID
		}
		UpdatePosition []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Position int
		}
		Reorder []struct {
			Ctx   context.Context
			Items []domain.ReorderItem
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByOwner []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			C   *domain.Collection
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.CollectionUpdate
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockSiblings       sync.RWMutex
	lockUpdatePosition sync.RWMutex
	lockReorder        sync.RWMutex
	lockGetByID        sync.RWMutex
	lockListByOwner    sync.RWMutex
	lockCreate         sync.RWMutex
	lockUpdate         sync.RWMutex
	lockDelete         sync.RWMutex
}

func (mock *collectionRepoMock) Siblings(ctx context.Context, parentID uuid.UUID) ([]domain.Sibling, error) {
	if mock.SiblingsFunc == nil {
		panic("collectionRepoMock.SiblingsFunc: method is nil but collectionRepo.Siblings was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ParentID uuid.UUID
	}{Ctx: ctx, ParentID: parentID}
	mock.lockSiblings.Lock()
	mock.calls.Siblings = append(mock.calls.Siblings, callInfo)
	mock.lockSiblings.Unlock()
	return mock.SiblingsFunc(ctx, parentID)
}

func (mock *collectionRepoMock) SiblingsCalls() []struct {
	Ctx      context.Context
	ParentID uuid.UUID
} {
	mock.lockSiblings.RLock()
	calls := mock.calls.Siblings
	mock.lockSiblings.RUnlock()
	return calls
}

func (mock *collectionRepoMock) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	if mock.UpdatePositionFunc == nil {
		panic("collectionRepoMock.UpdatePositionFunc: method is nil but collectionRepo.UpdatePosition was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Position int
	}{Ctx: ctx, ID: id, Position: position}
	mock.lockUpdatePosition.Lock()
	mock.calls.UpdatePosition = append(mock.calls.UpdatePosition, callInfo)
	mock.lockUpdatePosition.Unlock()
	return mock.UpdatePositionFunc(ctx, id, position)
}

func (mock *collectionRepoMock) UpdatePositionCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Position int
} {
	mock.lockUpdatePosition.RLock()
	calls := mock.calls.UpdatePosition
	mock.lockUpdatePosition.RUnlock()
	return calls
}

func (mock *collectionRepoMock) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	if mock.ReorderFunc == nil {
		panic("collectionRepoMock.ReorderFunc: method is nil but collectionRepo.Reorder was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.ReorderItem
	}{Ctx: ctx, Items: items}
	mock.lockReorder.Lock()
	mock.calls.Reorder = append(mock.calls.Reorder, callInfo)
	mock.lockReorder.Unlock()
	return mock.ReorderFunc(ctx, items)
}

func (mock *collectionRepoMock) ReorderCalls() []struct {
	Ctx   context.Context
	Items []domain.ReorderItem
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}

func (mock *collectionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	if mock.GetByIDFunc == nil {
		panic("collectionRepoMock.GetByIDFunc: method is nil but collectionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *collectionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *collectionRepoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Collection, error) {
	if mock.ListByOwnerFunc == nil {
		panic("collectionRepoMock.ListByOwnerFunc: method is nil but collectionRepo.ListByOwner was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockListByOwner.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, callInfo)
	mock.lockListByOwner.Unlock()
	return mock.ListByOwnerFunc(ctx, ownerID)
}

func (mock *collectionRepoMock) ListByOwnerCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockListByOwner.RLock()
	calls := mock.calls.ListByOwner
	mock.lockListByOwner.RUnlock()
	return calls
}

func (mock *collectionRepoMock) Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error) {
	if mock.CreateFunc == nil {
		panic("collectionRepoMock.CreateFunc: method is nil but collectionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Collection
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *collectionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Collection
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *collectionRepoMock) Update(ctx context.Context, id uuid.UUID, upd domain.CollectionUpdate) (*domain.Collection, error) {
	if mock.UpdateFunc == nil {
		panic("collectionRepoMock.UpdateFunc: method is nil but collectionRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Upd domain.CollectionUpdate
	}{Ctx: ctx, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, upd)
}

func (mock *collectionRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Upd domain.CollectionUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *collectionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("collectionRepoMock.DeleteFunc: method is nil but collectionRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *collectionRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
