package share

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ groupRepo = &groupRepoMock{}

type groupRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByCollectionFunc func(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByCollection []struct {
			Ctx          context.Context
			CollectionID uuid.UUID
		}
	}
	lockGetByID          sync.RWMutex
	lockListByCollection sync.RWMutex
}

func (mock *groupRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if mock.GetByIDFunc == nil {
		panic("groupRepoMock.GetByIDFunc: method is nil but groupRepo.GetByID was just called")
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

func (mock *groupRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *groupRepoMock) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error) {
	if mock.ListByCollectionFunc == nil {
		panic("groupRepoMock.ListByCollectionFunc: method is nil but groupRepo.ListByCollection was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CollectionID uuid.UUID
	}{Ctx: ctx, CollectionID: collectionID}
	mock.lockListByCollection.Lock()
	mock.calls.ListByCollection = append(mock.calls.ListByCollection, callInfo)
	mock.lockListByCollection.Unlock()
	return mock.ListByCollectionFunc(ctx, collectionID)
}

func (mock *groupRepoMock) ListByCollectionCalls() []struct {
	Ctx          context.Context
	CollectionID uuid.UUID
} {
	mock.lockListByCollection.RLock()
	calls := mock.calls.ListByCollection
	mock.lockListByCollection.RUnlock()
	return calls
}
