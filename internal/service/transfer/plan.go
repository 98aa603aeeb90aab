package transfer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/position"
)

// plan is the set of rows an import inserts, with fresh ids and parent
// references rewritten through the id remaps.
type plan struct {
	collections []domain.Collection
	groups      []domain.Group
	items       []domain.Item
}

// buildPlan assigns new ids level by level and rewrites each parent
// reference through the remap of the level above. A reference that is not
// in the remap is a *domain.DanglingReferenceError. Positions become dense
// per parent while keeping document order for ties.
func (d *Document) buildPlan(ownerID uuid.UUID, newID func() uuid.UUID) (*plan, error) {
	p := &plan{
		collections: make([]domain.Collection, len(d.Collections)),
		groups:      make([]domain.Group, len(d.Groups)),
		items:       make([]domain.Item, len(d.Items)),
	}

	collectionIDs := make(map[RecordID]uuid.UUID, len(d.Collections))
	collectionPos := make([]int, len(d.Collections))
	for i, c := range d.Collections {
		id := newID()
		collectionIDs[c.ID] = id
		collectionPos[i] = c.Position
		p.collections[i] = domain.Collection{
			ID:      id,
			OwnerID: ownerID,
			Name:    domain.NormalizeName(c.Name),
			Color:   colorOrDefault(c.Color),
		}
	}
	for i, pos := range position.Dense(collectionPos) {
		p.collections[i].Position = pos
	}

	groupIDs := make(map[RecordID]uuid.UUID, len(d.Groups))
	groupParents := make([]uuid.UUID, len(d.Groups))
	groupPos := make([]int, len(d.Groups))
	for i, g := range d.Groups {
		parent, ok := collectionIDs[g.CollectionID]
		if !ok {
			return nil, &domain.DanglingReferenceError{Entity: "group", Index: i, Field: "collection_id", Ref: string(g.CollectionID)}
		}
		id := newID()
		groupIDs[g.ID] = id
		groupParents[i] = parent
		groupPos[i] = g.Position
		p.groups[i] = domain.Group{
			ID:           id,
			CollectionID: parent,
			Name:         domain.NormalizeName(g.Name),
			Color:        colorOrDefault(g.Color),
		}
	}
	for i, pos := range densePerParent(groupParents, groupPos) {
		p.groups[i].Position = pos
	}

	itemParents := make([]uuid.UUID, len(d.Items))
	itemPos := make([]int, len(d.Items))
	for i, it := range d.Items {
		parent, ok := groupIDs[it.GroupID]
		if !ok {
			return nil, &domain.DanglingReferenceError{Entity: "item", Index: i, Field: "group_id", Ref: string(it.GroupID)}
		}
		url := strings.TrimSpace(it.URL)
		title := strings.TrimSpace(it.Title)
		if title == "" {
			title = domain.TitleFromURL(url)
		}
		itemParents[i] = parent
		itemPos[i] = it.Position
		p.items[i] = domain.Item{
			ID:          newID(),
			GroupID:     parent,
			Title:       title,
			URL:         url,
			Description: it.Description,
			Favicon:     it.Favicon,
		}
	}
	for i, pos := range densePerParent(itemParents, itemPos) {
		p.items[i].Position = pos
	}

	return p, nil
}

// densePerParent ranks positions within each parent independently.
func densePerParent(parents []uuid.UUID, positions []int) []int {
	byParent := map[uuid.UUID][]int{}
	for i, parent := range parents {
		byParent[parent] = append(byParent[parent], i)
	}

	out := make([]int, len(positions))
	for _, idx := range byParent {
		raw := make([]int, len(idx))
		for j, i := range idx {
			raw[j] = positions[i]
		}
		for j, rank := range position.Dense(raw) {
			out[idx[j]] = rank
		}
	}
	return out
}

func colorOrDefault(c string) string {
	if c == "" {
		return domain.DefaultColor
	}
	return c
}
