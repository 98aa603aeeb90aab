package share

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"sync"
)

var _ tokenRepo = &tokenRepoMock{}

type tokenRepoMock struct {
	CreateFunc         func(ctx context.Context, t *domain.ShareToken) (*domain.ShareToken, error)
	GetByTokenFunc     func(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error)
	ListByResourceFunc func(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error)
	DeleteByTokenFunc  func(ctx context.Context, issuerID uuid.UUID, token string) (*domain.ShareToken, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			T   *domain.ShareToken
		}
		GetByToken []struct {
			Ctx          context.Context
			ResourceType domain.ResourceType
			Token        string
		}
		ListByResource []struct {
			Ctx context.Context
			Ref domain.ResourceRef
		}
		DeleteByToken []struct {
			Ctx      context.Context
			IssuerID uuid.UUID
			Token    string
		}
	}
	lockCreate         sync.RWMutex
	lockGetByToken     sync.RWMutex
	lockListByResource sync.RWMutex
	lockDeleteByToken  sync.RWMutex
}

func (mock *tokenRepoMock) Create(ctx context.Context, t *domain.ShareToken) (*domain.ShareToken, error) {
	if mock.CreateFunc == nil {
		panic("tokenRepoMock.CreateFunc: method is nil but tokenRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.ShareToken
	}{Ctx: ctx, T: t}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *tokenRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   *domain.ShareToken
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *tokenRepoMock) GetByToken(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error) {
	if mock.GetByTokenFunc == nil {
		panic("tokenRepoMock.GetByTokenFunc: method is nil but tokenRepo.GetByToken was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		ResourceType domain.ResourceType
		Token        string
	}{Ctx: ctx, ResourceType: resourceType, Token: token}
	mock.lockGetByToken.Lock()
	mock.calls.GetByToken = append(mock.calls.GetByToken, callInfo)
	mock.lockGetByToken.Unlock()
	return mock.GetByTokenFunc(ctx, resourceType, token)
}

func (mock *tokenRepoMock) GetByTokenCalls() []struct {
	Ctx          context.Context
	ResourceType domain.ResourceType
	Token        string
} {
	mock.lockGetByToken.RLock()
	calls := mock.calls.GetByToken
	mock.lockGetByToken.RUnlock()
	return calls
}

func (mock *tokenRepoMock) ListByResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error) {
	if mock.ListByResourceFunc == nil {
		panic("tokenRepoMock.ListByResourceFunc: method is nil but tokenRepo.ListByResource was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.ResourceRef
	}{Ctx: ctx, Ref: ref}
	mock.lockListByResource.Lock()
	mock.calls.ListByResource = append(mock.calls.ListByResource, callInfo)
	mock.lockListByResource.Unlock()
	return mock.ListByResourceFunc(ctx, ref)
}

func (mock *tokenRepoMock) ListByResourceCalls() []struct {
	Ctx context.Context
	Ref domain.ResourceRef
} {
	mock.lockListByResource.RLock()
	calls := mock.calls.ListByResource
	mock.lockListByResource.RUnlock()
	return calls
}

func (mock *tokenRepoMock) DeleteByToken(ctx context.Context, issuerID uuid.UUID, token string) (*domain.ShareToken, error) {
	if mock.DeleteByTokenFunc == nil {
		panic("tokenRepoMock.DeleteByTokenFunc: method is nil but tokenRepo.DeleteByToken was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		IssuerID uuid.UUID
		Token    string
	}{Ctx: ctx, IssuerID: issuerID, Token: token}
	mock.lockDeleteByToken.Lock()
	mock.calls.DeleteByToken = append(mock.calls.DeleteByToken, callInfo)
	mock.lockDeleteByToken.Unlock()
	return mock.DeleteByTokenFunc(ctx, issuerID, token)
}

func (mock *tokenRepoMock) DeleteByTokenCalls() []struct {
	Ctx      context.Context
	IssuerID uuid.UUID
	Token    string
} {
	mock.lockDeleteByToken.RLock()
	calls := mock.calls.DeleteByToken
	mock.lockDeleteByToken.RUnlock()
	return calls
}
