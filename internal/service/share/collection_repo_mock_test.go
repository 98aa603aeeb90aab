package share

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ collectionRepo = &collectionRepoMock{}

type collectionRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
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
