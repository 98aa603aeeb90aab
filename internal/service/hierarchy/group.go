package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// ListGroups returns the groups of a collection ordered by position.
func (s *Service) ListGroups(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error) {
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceCollection, ID: collectionID}); err != nil {
		return nil, err
	}

	groups, err := s.groups.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns a single group whose collection belongs to the caller.
func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: id}); err != nil {
		return nil, err
	}

	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

// CreateGroup appends a new group to a collection.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceCollection, ID: input.CollectionID})
	if err != nil {
		return nil, err
	}

	name := domain.NormalizeName(input.Name)

	var created *domain.Group
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.appendSlot(txCtx, s.groups, input.CollectionID, 1, "groups")
		if err != nil {
			return err
		}

		created, err = s.groups.Create(txCtx, &domain.Group{
			CollectionID: input.CollectionID,
			Name:         name,
			Color:        input.Color,
			Position:     slot,
		})
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeGroup, created.ID, domain.AuditActionCreate, map[string]any{
			"name":          map[string]any{"new": name},
			"collection_id": input.CollectionID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group created",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", input.CollectionID.String()),
		slog.String("group_id", created.ID.String()),
		slog.Int("position", created.Position),
	)

	return created, nil
}

// UpdateGroup renames or recolors a group.
func (s *Service) UpdateGroup(ctx context.Context, input UpdateGroupInput) (*domain.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: input.ID})
	if err != nil {
		return nil, err
	}

	upd := domain.GroupUpdate{Color: input.Color}
	changes := map[string]any{}
	if input.Name != nil {
		name := domain.NormalizeName(*input.Name)
		upd.Name = &name
		changes["name"] = map[string]any{"new": name}
	}
	if input.Color != nil {
		changes["color"] = map[string]any{"new": *input.Color}
	}

	var updated *domain.Group
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.groups.Update(txCtx, input.ID, upd)
		if err != nil {
			return fmt.Errorf("update group: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeGroup, input.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group updated",
		slog.String("user_id", userID.String()),
		slog.String("group_id", input.ID.String()),
	)

	return updated, nil
}

// DeleteGroup removes a group and its items.
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceGroup, ID: id})
	if err != nil {
		return err
	}

	var items int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if items, err = s.items.DeleteByGroup(txCtx, id); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if err := s.groups.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeGroup, id, domain.AuditActionDelete, map[string]any{
			"items": items,
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "group deleted",
		slog.String("user_id", userID.String()),
		slog.String("group_id", id.String()),
		slog.Int("items", items),
	)

	return nil
}
