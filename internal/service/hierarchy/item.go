package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// ListItems returns the items of a group ordered by position.
func (s *Service) ListItems(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error) {
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: groupID}); err != nil {
		return nil, err
	}

	items, err := s.items.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItem returns a single item reachable from one of the caller's collections.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceItem, ID: id}); err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// CreateItem appends a bookmark to a group. An empty title falls back to
// the URL host.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: input.GroupID})
	if err != nil {
		return nil, err
	}

	var created *domain.Item
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.appendSlot(txCtx, s.items, input.GroupID, 1, "items")
		if err != nil {
			return err
		}

		created, err = s.items.Create(txCtx, newItem(input.GroupID, input.Title, input.URL, input.Description, input.Favicon, slot))
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeItem, created.ID, domain.AuditActionCreate, map[string]any{
			"url":      map[string]any{"new": created.URL},
			"group_id": input.GroupID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("user_id", userID.String()),
		slog.String("group_id", input.GroupID.String()),
		slog.String("item_id", created.ID.String()),
		slog.Int("position", created.Position),
	)

	return created, nil
}

// AddItems appends several URLs to a group in input order. Blank entries
// are skipped.
func (s *Service) AddItems(ctx context.Context, input AddItemsInput) ([]domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: input.GroupID})
	if err != nil {
		return nil, err
	}

	urls := input.nonBlank()

	var created []domain.Item
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.appendSlot(txCtx, s.items, input.GroupID, len(urls), "urls")
		if err != nil {
			return err
		}

		created = make([]domain.Item, 0, len(urls))
		for i, u := range urls {
			it, err := s.items.Create(txCtx, newItem(input.GroupID, "", u, nil, nil, slot+i))
			if err != nil {
				return fmt.Errorf("create item %d: %w", i, err)
			}
			created = append(created, *it)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeGroup, input.GroupID, domain.AuditActionUpdate, map[string]any{
			"added_items": len(created),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "items added",
		slog.String("user_id", userID.String()),
		slog.String("group_id", input.GroupID.String()),
		slog.Int("count", len(created)),
	)

	return created, nil
}

// UpdateItem changes the attributes of an item. Setting an empty title
// re-derives it from the URL.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceItem, ID: input.ID})
	if err != nil {
		return nil, err
	}

	upd := domain.ItemUpdate{
		Title:       trimPtr(input.Title),
		URL:         trimPtr(input.URL),
		Description: trimPtr(input.Description),
		Favicon:     trimPtr(input.Favicon),
	}

	var updated *domain.Item
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if upd.Title != nil && *upd.Title == "" {
			source := upd.URL
			if source == nil {
				current, err := s.items.GetByID(txCtx, input.ID)
				if err != nil {
					return fmt.Errorf("get item: %w", err)
				}
				source = &current.URL
			}
			title := domain.TitleFromURL(*source)
			upd.Title = &title
		}

		var err error
		updated, err = s.items.Update(txCtx, input.ID, upd)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeItem, input.ID, domain.AuditActionUpdate, itemChanges(upd))
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("user_id", userID.String()),
		slog.String("item_id", input.ID.String()),
	)

	return updated, nil
}

// DeleteItem removes a single item.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceItem, ID: id})
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeItem, id, domain.AuditActionDelete, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", id.String()),
	)

	return nil
}

func newItem(groupID uuid.UUID, title, rawURL string, description, favicon *string, position int) *domain.Item {
	rawURL = strings.TrimSpace(rawURL)
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.TitleFromURL(rawURL)
	}
	return &domain.Item{
		GroupID:     groupID,
		Title:       title,
		URL:         rawURL,
		Description: trimOrNil(description),
		Favicon:     trimOrNil(favicon),
		Position:    position,
	}
}

func itemChanges(upd domain.ItemUpdate) map[string]any {
	changes := map[string]any{}
	if upd.Title != nil {
		changes["title"] = map[string]any{"new": *upd.Title}
	}
	if upd.URL != nil {
		changes["url"] = map[string]any{"new": *upd.URL}
	}
	if upd.Description != nil {
		changes["description"] = map[string]any{"new": *upd.Description}
	}
	if upd.Favicon != nil {
		changes["favicon"] = map[string]any{"new": *upd.Favicon}
	}
	return changes
}
