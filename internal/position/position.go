// Package position maps orderings of sibling entities to position updates.
// Positions are dense, zero-based and scoped to a single parent. Every
// function here is pure.
package position

import (
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// Assign returns one update per id, with position equal to its index.
// The result is ordered by ascending position. Duplicate ids are the
// caller's responsibility.
func Assign(ids []uuid.UUID) []domain.ReorderItem {
	updates := make([]domain.ReorderItem, len(ids))
	for i, id := range ids {
		updates[i] = domain.ReorderItem{ID: id, Position: i}
	}
	return updates
}

// Move returns a copy of ids with the element at from moved to index to.
// Indices outside the slice are clamped.
func Move(ids []uuid.UUID, from, to int) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, len(out))
	to = clamp(to, len(out))
	if from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// Changed filters updates down to the ones whose target position differs
// from the position recorded in current. Ids absent from current are kept.
func Changed(current []domain.Sibling, updates []domain.ReorderItem) []domain.ReorderItem {
	known := make(map[uuid.UUID]int, len(current))
	for _, s := range current {
		known[s.ID] = s.Position
	}

	var out []domain.ReorderItem
	for _, u := range updates {
		if pos, ok := known[u.ID]; ok && pos == u.Position {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Sort orders siblings by position ascending with ties broken by id.
func Sort(siblings []domain.Sibling) {
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].Position != siblings[j].Position {
			return siblings[i].Position < siblings[j].Position
		}
		return siblings[i].ID.String() < siblings[j].ID.String()
	})
}

// Renumber returns the update set that makes siblings dense while keeping
// their current relative order. Siblings that already sit at their dense
// position are left out.
func Renumber(siblings []domain.Sibling) []domain.ReorderItem {
	sorted := make([]domain.Sibling, len(siblings))
	copy(sorted, siblings)
	Sort(sorted)

	ids := make([]uuid.UUID, len(sorted))
	for i, s := range sorted {
		ids[i] = s.ID
	}
	return Changed(sorted, Assign(ids))
}

// Dense maps raw positions to dense ranks 0..n-1. Equal positions keep
// their input order.
func Dense(positions []int) []int {
	idx := make([]int, len(positions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return positions[idx[a]] < positions[idx[b]]
	})

	ranks := make([]int, len(positions))
	for rank, i := range idx {
		ranks[i] = rank
	}
	return ranks
}

// Next returns the slot after the highest sibling position, 0 for none.
// After deletes it can exceed len(siblings).
func Next(siblings []domain.Sibling) int {
	next := 0
	for _, s := range siblings {
		next = max(next, s.Position+1)
	}
	return next
}

// IndexOf returns the index of id in ids, or -1.
func IndexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
