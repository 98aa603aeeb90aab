package rest

import (
	"context"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/share"
	"sync"
)

var _ shareService = &shareServiceMock{}

type shareServiceMock struct {
	IssueFunc           func(ctx context.Context, in share.IssueInput) (*share.Issued, error)
	ListForResourceFunc func(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error)
	RevokeFunc          func(ctx context.Context, token string) error
	ResolveFunc         func(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.SharedSubtree, error)
	URLFunc             func(resourceType domain.ResourceType, token string) string

	calls struct {
		Issue []struct {
			Ctx context.Context
			In  share.IssueInput
		}
		ListForResource []struct {
			Ctx context.Context
			Ref domain.ResourceRef
		}
		Revoke []struct {
			Ctx   context.Context
			Token string
		}
		Resolve []struct {
			Ctx          context.Context
			ResourceType domain.ResourceType
			Token        string
		}
		URL []struct {
			ResourceType domain.ResourceType
			Token        string
		}
	}
	lockIssue           sync.RWMutex
	lockListForResource sync.RWMutex
	lockRevoke          sync.RWMutex
	lockResolve         sync.RWMutex
	lockURL             sync.RWMutex
}

func (mock *shareServiceMock) Issue(ctx context.Context, in share.IssueInput) (*share.Issued, error) {
	if mock.IssueFunc == nil {
		panic("shareServiceMock.IssueFunc: method is nil but shareService.Issue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  share.IssueInput
	}{Ctx: ctx, In: in}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(ctx, in)
}

func (mock *shareServiceMock) IssueCalls() []struct {
	Ctx context.Context
	In  share.IssueInput
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *shareServiceMock) ListForResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error) {
	if mock.ListForResourceFunc == nil {
		panic("shareServiceMock.ListForResourceFunc: method is nil but shareService.ListForResource was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.ResourceRef
	}{Ctx: ctx, Ref: ref}
	mock.lockListForResource.Lock()
	mock.calls.ListForResource = append(mock.calls.ListForResource, callInfo)
	mock.lockListForResource.Unlock()
	return mock.ListForResourceFunc(ctx, ref)
}

func (mock *shareServiceMock) ListForResourceCalls() []struct {
	Ctx context.Context
	Ref domain.ResourceRef
} {
	mock.lockListForResource.RLock()
	calls := mock.calls.ListForResource
	mock.lockListForResource.RUnlock()
	return calls
}

func (mock *shareServiceMock) Revoke(ctx context.Context, token string) error {
	if mock.RevokeFunc == nil {
		panic("shareServiceMock.RevokeFunc: method is nil but shareService.Revoke was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockRevoke.Lock()
	mock.calls.Revoke = append(mock.calls.Revoke, callInfo)
	mock.lockRevoke.Unlock()
	return mock.RevokeFunc(ctx, token)
}

func (mock *shareServiceMock) RevokeCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockRevoke.RLock()
	calls := mock.calls.Revoke
	mock.lockRevoke.RUnlock()
	return calls
}

func (mock *shareServiceMock) Resolve(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.SharedSubtree, error) {
	if mock.ResolveFunc == nil {
		panic("shareServiceMock.ResolveFunc: method is nil but shareService.Resolve was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		ResourceType domain.ResourceType
		Token        string
	}{Ctx: ctx, ResourceType: resourceType, Token: token}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, resourceType, token)
}

func (mock *shareServiceMock) ResolveCalls() []struct {
	Ctx          context.Context
	ResourceType domain.ResourceType
	Token        string
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}

func (mock *shareServiceMock) URL(resourceType domain.ResourceType, token string) string {
	if mock.URLFunc == nil {
		panic("shareServiceMock.URLFunc: method is nil but shareService.URL was just called")
	}
	callInfo := struct {
		ResourceType domain.ResourceType
		Token        string
	}{ResourceType: resourceType, Token: token}
	mock.lockURL.Lock()
	mock.calls.URL = append(mock.calls.URL, callInfo)
	mock.lockURL.Unlock()
	return mock.URLFunc(resourceType, token)
}

func (mock *shareServiceMock) URLCalls() []struct {
	ResourceType domain.ResourceType
	Token        string
} {
	mock.lockURL.RLock()
	calls := mock.calls.URL
	mock.lockURL.RUnlock()
	return calls
}
