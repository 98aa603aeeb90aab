package hierarchy

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	SiblingsFunc           func(ctx context.Context, parentID uuid.UUID) ([]domain.Sibling, error)
	UpdatePositionFunc     func(ctx context.Context, id uuid.UUID, position int) error
	ReorderFunc            func(ctx context.Context, items []domain.ReorderItem) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByGroupFunc        func(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error)
	CreateFunc             func(ctx context.Context, it *domain.Item) (*domain.Item, error)
	UpdateFunc             func(ctx context.Context, id uuid.UUID, upd domain.ItemUpdate) (*domain.Item, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteByGroupFunc      func(ctx context.Context, groupID uuid.UUID) (int, error)
	DeleteByCollectionFunc func(ctx context.Context, collectionID uuid.UUID) (int, error)

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
		ListByGroup []struct {
			Ctx     context.Context
			GroupID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			It  *domain.Item
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.ItemUpdate
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		DeleteByGroup []struct {
			Ctx     context.Context
			GroupID uuid.UUID
		}
		DeleteByCollection []struct {
			Ctx          context.Context
			CollectionID uuid.UUID
		}
	}
	lockSiblings           sync.RWMutex
	lockUpdatePosition     sync.RWMutex
	lockReorder            sync.RWMutex
	lockGetByID            sync.RWMutex
	lockListByGroup        sync.RWMutex
	lockCreate             sync.RWMutex
	lockUpdate             sync.RWMutex
	lockDelete             sync.RWMutex
	lockDeleteByGroup      sync.RWMutex
	lockDeleteByCollection sync.RWMutex
}

func (mock *itemRepoMock) Siblings(ctx context.Context, parentID uuid.UUID) ([]domain.Sibling, error) {
	if mock.SiblingsFunc == nil {
		panic("itemRepoMock.SiblingsFunc: method is nil but itemRepo.Siblings was just called")
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

func (mock *itemRepoMock) SiblingsCalls() []struct {
	Ctx      context.Context
	ParentID uuid.UUID
} {
	mock.lockSiblings.RLock()
	calls := mock.calls.Siblings
	mock.lockSiblings.RUnlock()
	return calls
}

func (mock *itemRepoMock) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	if mock.UpdatePositionFunc == nil {
		panic("itemRepoMock.UpdatePositionFunc: method is nil but itemRepo.UpdatePosition was just called")
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

func (mock *itemRepoMock) UpdatePositionCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Position int
} {
	mock.lockUpdatePosition.RLock()
	calls := mock.calls.UpdatePosition
	mock.lockUpdatePosition.RUnlock()
	return calls
}

func (mock *itemRepoMock) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	if mock.ReorderFunc == nil {
		panic("itemRepoMock.ReorderFunc: method is nil but itemRepo.Reorder was just called")
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

func (mock *itemRepoMock) ReorderCalls() []struct {
	Ctx   context.Context
	Items []domain.ReorderItem
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
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

func (mock *itemRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *itemRepoMock) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error) {
	if mock.ListByGroupFunc == nil {
		panic("itemRepoMock.ListByGroupFunc: method is nil but itemRepo.ListByGroup was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
	}{Ctx: ctx, GroupID: groupID}
	mock.lockListByGroup.Lock()
	mock.calls.ListByGroup = append(mock.calls.ListByGroup, callInfo)
	mock.lockListByGroup.Unlock()
	return mock.ListByGroupFunc(ctx, groupID)
}

func (mock *itemRepoMock) ListByGroupCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
} {
	mock.lockListByGroup.RLock()
	calls := mock.calls.ListByGroup
	mock.lockListByGroup.RUnlock()
	return calls
}

func (mock *itemRepoMock) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		It  *domain.Item
	}{Ctx: ctx, It: it}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, it)
}

func (mock *itemRepoMock) CreateCalls() []struct {
	Ctx context.Context
	It  *domain.Item
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *itemRepoMock) Update(ctx context.Context, id uuid.UUID, upd domain.ItemUpdate) (*domain.Item, error) {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Upd domain.ItemUpdate
	}{Ctx: ctx, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, upd)
}

func (mock *itemRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Upd domain.ItemUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *itemRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
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

func (mock *itemRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *itemRepoMock) DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	if mock.DeleteByGroupFunc == nil {
		panic("itemRepoMock.DeleteByGroupFunc: method is nil but itemRepo.DeleteByGroup was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
	}{Ctx: ctx, GroupID: groupID}
	mock.lockDeleteByGroup.Lock()
	mock.calls.DeleteByGroup = append(mock.calls.DeleteByGroup, callInfo)
	mock.lockDeleteByGroup.Unlock()
	return mock.DeleteByGroupFunc(ctx, groupID)
}

func (mock *itemRepoMock) DeleteByGroupCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
} {
	mock.lockDeleteByGroup.RLock()
	calls := mock.calls.DeleteByGroup
	mock.lockDeleteByGroup.RUnlock()
	return calls
}

func (mock *itemRepoMock) DeleteByCollection(ctx context.Context, collectionID uuid.UUID) (int, error) {
	if mock.DeleteByCollectionFunc == nil {
		panic("itemRepoMock.DeleteByCollectionFunc: method is nil but itemRepo.DeleteByCollection was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CollectionID uuid.UUID
	}{Ctx: ctx, CollectionID: collectionID}
	mock.lockDeleteByCollection.Lock()
	mock.calls.DeleteByCollection = append(mock.calls.DeleteByCollection, callInfo)
	mock.lockDeleteByCollection.Unlock()
	return mock.DeleteByCollectionFunc(ctx, collectionID)
}

func (mock *itemRepoMock) DeleteByCollectionCalls() []struct {
	Ctx          context.Context
	CollectionID uuid.UUID
} {
	mock.lockDeleteByCollection.RLock()
	calls := mock.calls.DeleteByCollection
	mock.lockDeleteByCollection.RUnlock()
	return calls
}
