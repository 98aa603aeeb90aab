// Package hierarchy implements owner-scoped reads and writes for
// collections, groups and items.
package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/position"
	"github.com/heartmarshall/bookmarks-backend/pkg/ctxutil"
)

// siblingStore is the part of each repo that deals with positions.
// For collections the parent id is the owner id.
type siblingStore interface {
	Siblings(ctx context.Context, parentID uuid.UUID) ([]domain.Sibling, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	Reorder(ctx context.Context, items []domain.ReorderItem) error
}

type collectionRepo interface {
	siblingStore
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Collection, error)
	Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.CollectionUpdate) (*domain.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type groupRepo interface {
	siblingStore
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error)
	Create(ctx context.Context, g *domain.Group) (*domain.Group, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.GroupUpdate) (*domain.Group, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCollection(ctx context.Context, collectionID uuid.UUID) (int, error)
}

type itemRepo interface {
	siblingStore
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error)
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
	DeleteByCollection(ctx context.Context, collectionID uuid.UUID) (int, error)
}

type ownershipRepo interface {
	OwnerOf(ctx context.Context, ref domain.ResourceRef) (uuid.UUID, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides owner-scoped CRUD over the bookmark hierarchy.
type Service struct {
	collections collectionRepo
	groups      groupRepo
	items       itemRepo
	owners      ownershipRepo
	audit       auditLogger
	tx          txManager
	maxSiblings int
	log         *slog.Logger
}

// NewService creates a new hierarchy service.
func NewService(
	log *slog.Logger,
	collections collectionRepo,
	groups groupRepo,
	items itemRepo,
	owners ownershipRepo,
	audit auditLogger,
	tx txManager,
	cfg config.ReorderConfig,
) *Service {
	return &Service{
		collections: collections,
		groups:      groups,
		items:       items,
		owners:      owners,
		audit:       audit,
		tx:          tx,
		maxSiblings: cfg.MaxSiblings,
		log:         log.With("service", "hierarchy"),
	}
}

// callerID returns the authenticated user or ErrUnauthenticated.
func callerID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return userID, nil
}

// authorize resolves the full owner chain of ref and checks that it ends at
// the caller. It returns the caller id.
func (s *Service) authorize(ctx context.Context, ref domain.ResourceRef) (uuid.UUID, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	owner, err := s.owners.OwnerOf(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve owner of %s: %w", ref, err)
	}
	if owner != userID {
		return uuid.Nil, fmt.Errorf("%s: %w", ref, domain.ErrUnauthorized)
	}
	return userID, nil
}

// authorizeParent checks access to the parent of a sibling set of kind.
func (s *Service) authorizeParent(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) (uuid.UUID, error) {
	if kind == domain.ResourceCollection {
		userID, err := callerID(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		if parentID != userID {
			return uuid.Nil, fmt.Errorf("collections of %s: %w", parentID, domain.ErrUnauthorized)
		}
		return userID, nil
	}
	parent, ok := kind.ParentType()
	if !ok {
		return uuid.Nil, domain.MalformedInput("unknown resource type %q", kind)
	}
	return s.authorize(ctx, domain.ResourceRef{Type: parent, ID: parentID})
}

func (s *Service) siblings(kind domain.ResourceType) (siblingStore, error) {
	switch kind {
	case domain.ResourceCollection:
		return s.collections, nil
	case domain.ResourceGroup:
		return s.groups, nil
	case domain.ResourceItem:
		return s.items, nil
	default:
		return nil, domain.MalformedInput("unknown resource type %q", kind)
	}
}

// appendSlot returns the position a new child of parentID takes, after
// checking that adding more children fits under maxSiblings.
func (s *Service) appendSlot(ctx context.Context, store siblingStore, parentID uuid.UUID, adding int, field string) (int, error) {
	siblings, err := store.Siblings(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", field, err)
	}
	if err := s.checkCapacity(len(siblings), adding, field); err != nil {
		return 0, err
	}
	return position.Next(siblings), nil
}

// checkCapacity rejects appends to a parent that already holds maxSiblings children.
func (s *Service) checkCapacity(count, adding int, field string) error {
	if s.maxSiblings > 0 && count+adding > s.maxSiblings {
		return domain.NewValidationError(field, fmt.Sprintf("limit reached (max %d)", s.maxSiblings))
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, userID uuid.UUID, entity domain.EntityType, id uuid.UUID, action domain.AuditAction, changes map[string]any) error {
	if err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:     userID,
		EntityType: entity,
		EntityID:   &id,
		Action:     action,
		Changes:    changes,
	}); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
