package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// ListCollections returns the caller's collections ordered by position.
func (s *Service) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	collections, err := s.collections.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// GetCollection returns a single collection owned by the caller.
func (s *Service) GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceCollection, ID: id}); err != nil {
		return nil, err
	}

	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return c, nil
}

// CreateCollection appends a new collection to the caller's list.
func (s *Service) CreateCollection(ctx context.Context, input CreateCollectionInput) (*domain.Collection, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := domain.NormalizeName(input.Name)

	var created *domain.Collection
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.appendSlot(txCtx, s.collections, userID, 1, "collections")
		if err != nil {
			return err
		}

		created, err = s.collections.Create(txCtx, &domain.Collection{
			OwnerID:  userID,
			Name:     name,
			Color:    input.Color,
			Position: slot,
		})
		if err != nil {
			return fmt.Errorf("create collection: %w", err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeCollection, created.ID, domain.AuditActionCreate, map[string]any{
			"name": map[string]any{"new": name},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "collection created",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", created.ID.String()),
		slog.Int("position", created.Position),
	)

	return created, nil
}

// UpdateCollection renames or recolors a collection.
func (s *Service) UpdateCollection(ctx context.Context, input UpdateCollectionInput) (*domain.Collection, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceCollection, ID: input.ID})
	if err != nil {
		return nil, err
	}

	upd := domain.CollectionUpdate{Color: input.Color}
	changes := map[string]any{}
	if input.Name != nil {
		name := domain.NormalizeName(*input.Name)
		upd.Name = &name
		changes["name"] = map[string]any{"new": name}
	}
	if input.Color != nil {
		changes["color"] = map[string]any{"new": *input.Color}
	}

	var updated *domain.Collection
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.collections.Update(txCtx, input.ID, upd)
		if err != nil {
			return fmt.Errorf("update collection: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeCollection, input.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "collection updated",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", input.ID.String()),
	)

	return updated, nil
}

// DeleteCollection removes a collection with its groups and items.
// Surviving siblings keep their positions.
func (s *Service) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	userID, err := s.authorize(ctx, domain.ResourceRef{Type: domain.ResourceCollection, ID: id})
	if err != nil {
		return err
	}

	var items, groups int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if items, err = s.items.DeleteByCollection(txCtx, id); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if groups, err = s.groups.DeleteByCollection(txCtx, id); err != nil {
			return fmt.Errorf("delete groups: %w", err)
		}
		if err := s.collections.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		return s.logAudit(txCtx, userID, domain.EntityTypeCollection, id, domain.AuditActionDelete, map[string]any{
			"groups": groups,
			"items":  items,
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "collection deleted",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", id.String()),
		slog.Int("groups", groups),
		slog.Int("items", items),
	)

	return nil
}
