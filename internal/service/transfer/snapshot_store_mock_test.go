package transfer

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ snapshotStore = &snapshotStoreMock{}

type snapshotStoreMock struct {
	SaveFunc func(ctx context.Context, ownerID uuid.UUID, body []byte) (string, error)

	calls struct {
		Save []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Body    []byte
		}
	}
	lockSave sync.RWMutex
}

func (mock *snapshotStoreMock) Save(ctx context.Context, ownerID uuid.UUID, body []byte) (string, error) {
	if mock.SaveFunc == nil {
		panic("snapshotStoreMock.SaveFunc: method is nil but snapshotStore.Save was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Body    []byte
	}{Ctx: ctx, OwnerID: ownerID, Body: body}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, ownerID, body)
}

func (mock *snapshotStoreMock) SaveCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Body    []byte
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
