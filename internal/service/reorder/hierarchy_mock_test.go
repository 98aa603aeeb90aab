package reorder

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ hierarchy = &hierarchyMock{}

type hierarchyMock struct {
	ListSiblingsFunc   func(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) ([]domain.Sibling, error)
	UpdatePositionFunc func(ctx context.Context, kind domain.ResourceType, id uuid.UUID, pos int) error
	SetPositionsFunc   func(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updates []domain.ReorderItem) error
	RecordReorderFunc  func(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updated int) error

	calls struct {
		ListSiblings []struct {
			Ctx      context.Context
			Kind     domain.ResourceType
			ParentID uuid.UUID
		}
		UpdatePosition []struct {
			Ctx  context.Context
			Kind domain.ResourceType
			ID   uuid.UUID
			Pos  int
		}
		SetPositions []struct {
			Ctx      context.Context
			Kind     domain.ResourceType
			ParentID uuid.UUID
			Updates  []domain.ReorderItem
		}
		RecordReorder []struct {
			Ctx      context.Context
			Kind     domain.ResourceType
			ParentID uuid.UUID
			Updated  int
		}
	}
	lockListSiblings   sync.RWMutex
	lockUpdatePosition sync.RWMutex
	lockSetPositions   sync.RWMutex
	lockRecordReorder  sync.RWMutex
}

func (mock *hierarchyMock) ListSiblings(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) ([]domain.Sibling, error) {
	if mock.ListSiblingsFunc == nil {
		panic("hierarchyMock.ListSiblingsFunc: method is nil but hierarchy.ListSiblings was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.ResourceType
		ParentID uuid.UUID
	}{Ctx: ctx, Kind: kind, ParentID: parentID}
	mock.lockListSiblings.Lock()
	mock.calls.ListSiblings = append(mock.calls.ListSiblings, callInfo)
	mock.lockListSiblings.Unlock()
	return mock.ListSiblingsFunc(ctx, kind, parentID)
}

func (mock *hierarchyMock) ListSiblingsCalls() []struct {
	Ctx      context.Context
	Kind     domain.ResourceType
	ParentID uuid.UUID
} {
	mock.lockListSiblings.RLock()
	calls := mock.calls.ListSiblings
	mock.lockListSiblings.RUnlock()
	return calls
}

func (mock *hierarchyMock) UpdatePosition(ctx context.Context, kind domain.ResourceType, id uuid.UUID, pos int) error {
	if mock.UpdatePositionFunc == nil {
		panic("hierarchyMock.UpdatePositionFunc: method is nil but hierarchy.UpdatePosition was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.ResourceType
		ID   uuid.UUID
		Pos  int
	}{Ctx: ctx, Kind: kind, ID: id, Pos: pos}
	mock.lockUpdatePosition.Lock()
	mock.calls.UpdatePosition = append(mock.calls.UpdatePosition, callInfo)
	mock.lockUpdatePosition.Unlock()
	return mock.UpdatePositionFunc(ctx, kind, id, pos)
}

func (mock *hierarchyMock) UpdatePositionCalls() []struct {
	Ctx  context.Context
	Kind domain.ResourceType
	ID   uuid.UUID
	Pos  int
} {
	mock.lockUpdatePosition.RLock()
	calls := mock.calls.UpdatePosition
	mock.lockUpdatePosition.RUnlock()
	return calls
}

func (mock *hierarchyMock) SetPositions(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updates []domain.ReorderItem) error {
	if mock.SetPositionsFunc == nil {
		panic("hierarchyMock.SetPositionsFunc: method is nil but hierarchy.SetPositions was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.ResourceType
		ParentID uuid.UUID
		Updates  []domain.ReorderItem
	}{Ctx: ctx, Kind: kind, ParentID: parentID, Updates: updates}
	mock.lockSetPositions.Lock()
	mock.calls.SetPositions = append(mock.calls.SetPositions, callInfo)
	mock.lockSetPositions.Unlock()
	return mock.SetPositionsFunc(ctx, kind, parentID, updates)
}

func (mock *hierarchyMock) SetPositionsCalls() []struct {
	Ctx      context.Context
	Kind     domain.ResourceType
	ParentID uuid.UUID
	Updates  []domain.ReorderItem
} {
	mock.lockSetPositions.RLock()
	calls := mock.calls.SetPositions
	mock.lockSetPositions.RUnlock()
	return calls
}

func (mock *hierarchyMock) RecordReorder(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updated int) error {
	if mock.RecordReorderFunc == nil {
		panic("hierarchyMock.RecordReorderFunc: method is nil but hierarchy.RecordReorder was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.ResourceType
		ParentID uuid.UUID
		Updated  int
	}{Ctx: ctx, Kind: kind, ParentID: parentID, Updated: updated}
	mock.lockRecordReorder.Lock()
	mock.calls.RecordReorder = append(mock.calls.RecordReorder, callInfo)
	mock.lockRecordReorder.Unlock()
	return mock.RecordReorderFunc(ctx, kind, parentID, updated)
}

func (mock *hierarchyMock) RecordReorderCalls() []struct {
	Ctx      context.Context
	Kind     domain.ResourceType
	ParentID uuid.UUID
	Updated  int
} {
	mock.lockRecordReorder.RLock()
	calls := mock.calls.RecordReorder
	mock.lockRecordReorder.RUnlock()
	return calls
}
