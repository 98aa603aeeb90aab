package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/position"
)

// ListSiblings returns the positions of all children of parentID, ordered
// by position with ties broken by id. For collections parentID is the
// owner id and must be the caller.
func (s *Service) ListSiblings(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) ([]domain.Sibling, error) {
	store, err := s.siblings(kind)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeParent(ctx, kind, parentID); err != nil {
		return nil, err
	}

	siblings, err := store.Siblings(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s siblings: %w", kind, err)
	}
	position.Sort(siblings)
	return siblings, nil
}

// UpdatePosition writes one position. It is the single-pair write used by
// sequential reorder persistence.
func (s *Service) UpdatePosition(ctx context.Context, kind domain.ResourceType, id uuid.UUID, pos int) error {
	store, err := s.siblings(kind)
	if err != nil {
		return err
	}
	if pos < 0 {
		return domain.NewValidationError("position", "must be non-negative")
	}
	if _, err := s.authorize(ctx, domain.ResourceRef{Type: kind, ID: id}); err != nil {
		return err
	}

	if err := store.UpdatePosition(ctx, id, pos); err != nil {
		return fmt.Errorf("update %s position: %w", kind, err)
	}

	s.log.DebugContext(ctx, "position updated",
		slog.String("kind", kind.String()),
		slog.String("id", id.String()),
		slog.Int("position", pos),
	)
	return nil
}

// RecordReorder writes the audit record for a reorder persisted through
// UpdatePosition, where no single transaction can carry it.
func (s *Service) RecordReorder(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updated int) error {
	if _, err := s.siblings(kind); err != nil {
		return err
	}
	userID, err := s.authorizeParent(ctx, kind, parentID)
	if err != nil {
		return err
	}
	return s.logAudit(ctx, userID, domain.EntityTypeOf(kind), parentID, domain.AuditActionReorder, map[string]any{
		"kind":    kind.String(),
		"updated": updated,
	})
}

// SetPositions writes a whole update set for the children of parentID in
// one transaction. Every id must currently be a child of parentID.
func (s *Service) SetPositions(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updates []domain.ReorderItem) error {
	store, err := s.siblings(kind)
	if err != nil {
		return err
	}
	userID, err := s.authorizeParent(ctx, kind, parentID)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := store.Siblings(txCtx, parentID)
		if err != nil {
			return fmt.Errorf("list %s siblings: %w", kind, err)
		}
		children := make(map[uuid.UUID]struct{}, len(current))
		for _, c := range current {
			children[c.ID] = struct{}{}
		}
		for _, u := range updates {
			if _, ok := children[u.ID]; !ok {
				return domain.NewValidationError("ids", fmt.Sprintf("%s is not a child of %s", u.ID, parentID))
			}
			if u.Position < 0 {
				return domain.NewValidationError("position", "must be non-negative")
			}
		}

		if err := store.Reorder(txCtx, updates); err != nil {
			return fmt.Errorf("reorder %s: %w", kind, err)
		}

		return s.logAudit(txCtx, userID, domain.EntityTypeOf(kind), parentID, domain.AuditActionReorder, map[string]any{
			"kind":    kind.String(),
			"updated": len(updates),
		})
	})
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "positions updated",
		slog.String("user_id", userID.String()),
		slog.String("kind", kind.String()),
		slog.String("parent_id", parentID.String()),
		slog.Int("count", len(updates)),
	)
	return nil
}
