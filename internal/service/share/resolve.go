package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/metrics"
)

// Resolve returns the subtree a token grants access to. It needs no caller
// identity: holding the token is the authorization.
func (s *Service) Resolve(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.SharedSubtree, error) {
	if !resourceType.IsValid() {
		return nil, domain.MalformedInput("unknown resource type %q", resourceType)
	}

	subtree, err := s.resolve(ctx, resourceType, token)
	metrics.ShareResolveTotal.WithLabelValues(string(resourceType), resolveOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return subtree, nil
}

func (s *Service) resolve(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.SharedSubtree, error) {
	if token == "" {
		return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
	}

	t, err := s.lookup(ctx, resourceType, token)
	if err != nil {
		return nil, err
	}
	if t.IsExpired(s.now()) {
		return nil, fmt.Errorf("share token expired at %s: %w", t.ExpiresAt.Format(time.RFC3339), domain.ErrExpired)
	}

	subtree := &domain.SharedSubtree{
		Type:      t.ResourceType,
		SharedAt:  t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
	switch t.ResourceType {
	case domain.ResourceCollection:
		err = s.loadCollection(ctx, t.ResourceID, subtree)
	case domain.ResourceGroup:
		err = s.loadGroup(ctx, t.ResourceID, subtree)
	case domain.ResourceItem:
		subtree.Item, err = s.items.GetByID(ctx, t.ResourceID)
	}
	if err != nil {
		// The token outlived its resource.
		return nil, fmt.Errorf("shared %s: %w", t.Ref(), err)
	}
	return subtree, nil
}

// lookup reads the token through the cache when one is configured. Cache
// failures fall back to the repository.
func (s *Service) lookup(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, resourceType, token)
		switch {
		case err != nil:
			metrics.ShareCacheLookups.WithLabelValues("error").Inc()
			s.log.WarnContext(ctx, "share cache read failed", slog.String("error", err.Error()))
		case cached != nil:
			metrics.ShareCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ShareCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	t, err := s.tokens.GetByToken(ctx, resourceType, token)
	if err != nil {
		return nil, fmt.Errorf("share token: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *t); err != nil {
			s.log.WarnContext(ctx, "share cache write failed", slog.String("error", err.Error()))
		}
	}
	return t, nil
}

func (s *Service) loadGroup(ctx context.Context, id uuid.UUID, subtree *domain.SharedSubtree) error {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	items, err := s.items.ListByGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	subtree.Group = &domain.SharedGroup{Group: *g, Items: items}
	return nil
}

func (s *Service) loadCollection(ctx context.Context, id uuid.UUID, subtree *domain.SharedSubtree) error {
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return err
	}
	groups, err := s.groups.ListByCollection(ctx, id)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	groupIDs := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}
	itemsByGroup, errs := newItemsLoader(s.items, len(groupIDs)).LoadMany(ctx, groupIDs)()
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
	}

	subtree.Collection = c
	subtree.Groups = make([]domain.SharedGroup, len(groups))
	for i, g := range groups {
		subtree.Groups[i] = domain.SharedGroup{Group: g, Items: itemsByGroup[i]}
	}
	return nil
}

func resolveOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrExpired):
		return metrics.OutcomeExpired
	default:
		return metrics.OutcomeError
	}
}
