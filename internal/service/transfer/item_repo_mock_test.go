package transfer

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	ListByGroupIDsFunc func(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error)
	DeleteByOwnerFunc  func(ctx context.Context, ownerID uuid.UUID) (int, error)
	BulkInsertFunc     func(ctx context.Context, items []domain.Item) (int, error)

	calls struct {
		ListByGroupIDs []struct {
			Ctx      context.Context
			GroupIDs []uuid.UUID
		}
		DeleteByOwner []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		BulkInsert []struct {
			Ctx   context.Context
			Items []domain.Item
		}
	}
	lockListByGroupIDs sync.RWMutex
	lockDeleteByOwner  sync.RWMutex
	lockBulkInsert     sync.RWMutex
}

func (mock *itemRepoMock) ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error) {
	if mock.ListByGroupIDsFunc == nil {
		panic("itemRepoMock.ListByGroupIDsFunc: method is nil but itemRepo.ListByGroupIDs was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		GroupIDs []uuid.UUID
	}{Ctx: ctx, GroupIDs: groupIDs}
	mock.lockListByGroupIDs.Lock()
	mock.calls.ListByGroupIDs = append(mock.calls.ListByGroupIDs, callInfo)
	mock.lockListByGroupIDs.Unlock()
	return mock.ListByGroupIDsFunc(ctx, groupIDs)
}

func (mock *itemRepoMock) ListByGroupIDsCalls() []struct {
	Ctx      context.Context
	GroupIDs []uuid.UUID
} {
	mock.lockListByGroupIDs.RLock()
	calls := mock.calls.ListByGroupIDs
	mock.lockListByGroupIDs.RUnlock()
	return calls
}

func (mock *itemRepoMock) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if mock.DeleteByOwnerFunc == nil {
		panic("itemRepoMock.DeleteByOwnerFunc: method is nil but itemRepo.DeleteByOwner was just called")
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

func (mock *itemRepoMock) DeleteByOwnerCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockDeleteByOwner.RLock()
	calls := mock.calls.DeleteByOwner
	mock.lockDeleteByOwner.RUnlock()
	return calls
}

func (mock *itemRepoMock) BulkInsert(ctx context.Context, items []domain.Item) (int, error) {
	if mock.BulkInsertFunc == nil {
		panic("itemRepoMock.BulkInsertFunc: method is nil but itemRepo.BulkInsert was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.Item
	}{Ctx: ctx, Items: items}
	mock.lockBulkInsert.Lock()
	mock.calls.BulkInsert = append(mock.calls.BulkInsert, callInfo)
	mock.lockBulkInsert.Unlock()
	return mock.BulkInsertFunc(ctx, items)
}

func (mock *itemRepoMock) BulkInsertCalls() []struct {
	Ctx   context.Context
	Items []domain.Item
} {
	mock.lockBulkInsert.RLock()
	calls := mock.calls.BulkInsert
	mock.lockBulkInsert.RUnlock()
	return calls
}
