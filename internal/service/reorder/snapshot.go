package reorder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/position"
)

// Snapshot is a local view of one sibling set. Siblings are in display
// order. Snapshots are values: every operation returns a new one.
type Snapshot struct {
	Kind     domain.ResourceType
	ParentID uuid.UUID
	Siblings []domain.Sibling
}

// IDs returns the sibling ids in display order.
func (s Snapshot) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Siblings))
	for i, sib := range s.Siblings {
		ids[i] = sib.ID
	}
	return ids
}

// Move returns the snapshot with id moved to toIndex and every sibling
// renumbered to its index. Moving to the current slot returns an equal
// snapshot.
func (s Snapshot) Move(id uuid.UUID, toIndex int) (Snapshot, error) {
	ids := s.IDs()
	from := position.IndexOf(ids, id)
	if from < 0 {
		return Snapshot{}, fmt.Errorf("%s %s in %s: %w", s.Kind, id, s.ParentID, domain.ErrNotFound)
	}
	return s.withOrder(position.Move(ids, from, toIndex)), nil
}

// withOrder returns a snapshot whose siblings follow ids with dense positions.
func (s Snapshot) withOrder(ids []uuid.UUID) Snapshot {
	assigned := position.Assign(ids)
	siblings := make([]domain.Sibling, len(assigned))
	for i, a := range assigned {
		siblings[i] = domain.Sibling{ID: a.ID, Position: a.Position}
	}
	return Snapshot{Kind: s.Kind, ParentID: s.ParentID, Siblings: siblings}
}

// Updates returns the position writes needed to turn s into desired, in
// ascending target position.
func (s Snapshot) Updates(desired Snapshot) []domain.ReorderItem {
	return position.Changed(s.Siblings, position.Assign(desired.IDs()))
}

// checkPermutation reports whether ids is exactly the current sibling set.
func (s Snapshot) checkPermutation(ids []uuid.UUID) error {
	if len(ids) != len(s.Siblings) {
		return domain.NewValidationError("ids", fmt.Sprintf("expected %d ids, got %d", len(s.Siblings), len(ids)))
	}
	current := make(map[uuid.UUID]bool, len(s.Siblings))
	for _, sib := range s.Siblings {
		current[sib.ID] = false
	}
	for _, id := range ids {
		seen, ok := current[id]
		if !ok {
			return domain.NewValidationError("ids", fmt.Sprintf("%s is not a child of %s", id, s.ParentID))
		}
		if seen {
			return domain.NewValidationError("ids", fmt.Sprintf("%s appears more than once", id))
		}
		current[id] = true
	}
	return nil
}
