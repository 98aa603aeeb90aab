package transfer

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ groupRepo = &groupRepoMock{}

type groupRepoMock struct {
	ListByCollectionIDsFunc func(ctx context.Context, collectionIDs []uuid.UUID) ([]domain.Group, error)
	DeleteByOwnerFunc       func(ctx context.Context, ownerID uuid.UUID) (int, error)
	BulkInsertFunc          func(ctx context.Context, groups []domain.Group) (int, error)

	calls struct {
		ListByCollectionIDs []struct {
			Ctx           context.Context
			CollectionIDs []uuid.UUID
		}
		DeleteByOwner []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		BulkInsert []struct {
			Ctx    context.Context
			Groups []domain.Group
		}
	}
	lockListByCollectionIDs sync.RWMutex
	lockDeleteByOwner       sync.RWMutex
	lockBulkInsert          sync.RWMutex
}

func (mock *groupRepoMock) ListByCollectionIDs(ctx context.Context, collectionIDs []uuid.UUID) ([]domain.Group, error) {
	if mock.ListByCollectionIDsFunc == nil {
		panic("groupRepoMock.ListByCollectionIDsFunc: method is nil but groupRepo.ListByCollectionIDs was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		CollectionIDs []uuid.UUID
	}{Ctx: ctx, CollectionIDs: collectionIDs}
	mock.lockListByCollectionIDs.Lock()
	mock.calls.ListByCollectionIDs = append(mock.calls.ListByCollectionIDs, callInfo)
	mock.lockListByCollectionIDs.Unlock()
	return mock.ListByCollectionIDsFunc(ctx, collectionIDs)
}

func (mock *groupRepoMock) ListByCollectionIDsCalls() []struct {
	Ctx           context.Context
	CollectionIDs []uuid.UUID
} {
	mock.lockListByCollectionIDs.RLock()
	calls := mock.calls.ListByCollectionIDs
	mock.lockListByCollectionIDs.RUnlock()
	return calls
}

func (mock *groupRepoMock) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if mock.DeleteByOwnerFunc == nil {
		panic("groupRepoMock.DeleteByOwnerFunc: method is nil but groupRepo.DeleteByOwner was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockDeleteByOwner.Lock()
	mock.calls.DeleteByOwner = append(mock.calls.DeleteByOwner, callInfo)
	mock.lockDeleteByOwner.Unlock()
	return mock.DeleteByOwnerFunc(ctx, ownerID)
}

func (mock *groupRepoMock) DeleteByOwnerCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockDeleteByOwner.RLock()
	calls := mock.calls.DeleteByOwner
	mock.lockDeleteByOwner.RUnlock()
	return calls
}

func (mock *groupRepoMock) BulkInsert(ctx context.Context, groups []domain.Group) (int, error) {
	if mock.BulkInsertFunc == nil {
		panic("groupRepoMock.BulkInsertFunc: method is nil but groupRepo.BulkInsert was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Groups []domain.Group
	}{Ctx: ctx, Groups: groups}
	mock.lockBulkInsert.Lock()
	mock.calls.BulkInsert = append(mock.calls.BulkInsert, callInfo)
	mock.lockBulkInsert.Unlock()
	return mock.BulkInsertFunc(ctx, groups)
}

func (mock *groupRepoMock) BulkInsertCalls() []struct {
	Ctx    context.Context
	Groups []domain.Group
} {
	mock.lockBulkInsert.RLock()
	calls := mock.calls.BulkInsert
	mock.lockBulkInsert.RUnlock()
	return calls
}
