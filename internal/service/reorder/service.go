// Package reorder persists drag-to-reorder moves for sibling sets and
// recovers to the stored order when persistence fails.
package reorder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/metrics"
)

type hierarchy interface {
	ListSiblings(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) ([]domain.Sibling, error)
	UpdatePosition(ctx context.Context, kind domain.ResourceType, id uuid.UUID, pos int) error
	SetPositions(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updates []domain.ReorderItem) error
	RecordReorder(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, updated int) error
}

// Service coordinates reorders of collections, groups and items.
type Service struct {
	hierarchy   hierarchy
	atomic      bool
	maxSiblings int
	log         *slog.Logger
}

// NewService creates a new reorder service. With cfg.Atomic the update set
// is written in one transaction, otherwise pair by pair.
func NewService(log *slog.Logger, h hierarchy, cfg config.ReorderConfig) *Service {
	return &Service{
		hierarchy:   h,
		atomic:      cfg.Atomic,
		maxSiblings: cfg.MaxSiblings,
		log:         log.With("service", "reorder"),
	}
}

// Load reads the stored order of the children of parentID.
func (s *Service) Load(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) (Snapshot, error) {
	siblings, err := s.hierarchy.ListSiblings(ctx, kind, parentID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load %s siblings: %w", kind, err)
	}
	return Snapshot{Kind: kind, ParentID: parentID, Siblings: siblings}, nil
}

// Move loads the siblings of parentID, moves id to toIndex and persists
// the result.
func (s *Service) Move(ctx context.Context, kind domain.ResourceType, parentID, id uuid.UUID, toIndex int) (Snapshot, error) {
	current, err := s.Load(ctx, kind, parentID)
	if err != nil {
		return Snapshot{}, err
	}
	desired, err := current.Move(id, toIndex)
	if err != nil {
		return Snapshot{}, err
	}
	// A drop onto the current slot leaves gapped positions alone.
	if slices.Equal(desired.IDs(), current.IDs()) {
		metrics.ReorderTotal.WithLabelValues(kind.String(), metrics.OutcomeNoop).Inc()
		return current, nil
	}
	return s.Commit(ctx, current, desired)
}

// Reorder persists orderedIDs as the new order of the children of
// parentID. orderedIDs must be a permutation of the current children.
func (s *Service) Reorder(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, orderedIDs []uuid.UUID) (Snapshot, error) {
	if s.maxSiblings > 0 && len(orderedIDs) > s.maxSiblings {
		return Snapshot{}, domain.NewValidationError("ids", fmt.Sprintf("max %d ids", s.maxSiblings))
	}

	current, err := s.Load(ctx, kind, parentID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := current.checkPermutation(orderedIDs); err != nil {
		return Snapshot{}, err
	}
	return s.Commit(ctx, current, current.withOrder(orderedIDs))
}

// Commit writes the positions that differ between current and desired.
// Nothing is written when they already agree. On failure the remaining
// writes are skipped, the stored order is reloaded and a *RecoveryError
// carrying it is returned.
func (s *Service) Commit(ctx context.Context, current, desired Snapshot) (Snapshot, error) {
	kind := current.Kind.String()
	updates := current.Updates(desired)
	if len(updates) == 0 {
		metrics.ReorderTotal.WithLabelValues(kind, metrics.OutcomeNoop).Inc()
		return desired.withOrder(desired.IDs()), nil
	}

	persisted, err := s.persist(ctx, current, updates)
	metrics.ReorderWrites.WithLabelValues(kind).Add(float64(persisted))
	if !s.atomic && persisted > 0 {
		s.recordSequential(ctx, current, persisted)
	}
	if err != nil {
		return s.recoverOrder(ctx, current, err, persisted, len(updates))
	}

	metrics.ReorderTotal.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	s.log.DebugContext(ctx, "siblings reordered",
		slog.String("kind", kind),
		slog.String("parent_id", current.ParentID.String()),
		slog.Int("updated", len(updates)),
	)
	return desired.withOrder(desired.IDs()), nil
}

// persist returns how many updates were stored before the first failure.
func (s *Service) persist(ctx context.Context, current Snapshot, updates []domain.ReorderItem) (int, error) {
	if s.atomic {
		if err := s.hierarchy.SetPositions(ctx, current.Kind, current.ParentID, updates); err != nil {
			return 0, err
		}
		return len(updates), nil
	}

	for i, u := range updates {
		if err := s.hierarchy.UpdatePosition(ctx, current.Kind, u.ID, u.Position); err != nil {
			return i, fmt.Errorf("update position of %s: %w", u.ID, err)
		}
	}
	return len(updates), nil
}

// recordSequential audits the pairs written outside a transaction. The
// positions are already stored, so a failed audit write is only logged.
func (s *Service) recordSequential(ctx context.Context, current Snapshot, persisted int) {
	if err := s.hierarchy.RecordReorder(ctx, current.Kind, current.ParentID, persisted); err != nil {
		s.log.WarnContext(ctx, "reorder audit failed",
			slog.String("kind", current.Kind.String()),
			slog.String("parent_id", current.ParentID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recoverOrder(ctx context.Context, current Snapshot, cause error, persisted, total int) (Snapshot, error) {
	kind := current.Kind.String()
	metrics.ReorderTotal.WithLabelValues(kind, metrics.OutcomeRecovered).Inc()

	recErr := &RecoveryError{Err: cause, Persisted: persisted, Total: total}
	reloaded, err := s.Load(ctx, current.Kind, current.ParentID)
	if err != nil {
		recErr.ReloadErr = err
		recErr.Snapshot = current
	} else {
		recErr.Snapshot = reloaded
	}

	s.log.WarnContext(ctx, "reorder interrupted, reloaded stored order",
		slog.String("kind", kind),
		slog.String("parent_id", current.ParentID.String()),
		slog.Int("persisted", persisted),
		slog.Int("total", total),
		slog.String("error", cause.Error()),
	)
	return recErr.Snapshot, recErr
}
