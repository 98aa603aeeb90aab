package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCollection inserts a collection owned by ownerID at position.
func SeedCollection(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, position int) domain.Collection {
	t.Helper()

	c := domain.Collection{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     "Collection " + uniqueSuffix(),
		Color:    domain.DefaultColor,
		Position: position,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO bookmark_collections (id, owner_id, name, color, position)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		c.ID, c.OwnerID, c.Name, c.Color, c.Position,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedCollection: %v", err)
	}
	return c
}

// SeedGroup inserts a group into collectionID at position.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, collectionID uuid.UUID, position int) domain.Group {
	t.Helper()

	g := domain.Group{
		ID:           uuid.New(),
		CollectionID: collectionID,
		Name:         "Group " + uniqueSuffix(),
		Color:        domain.DefaultColor,
		Position:     position,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO bookmark_groups (id, collection_id, name, color, position)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		g.ID, g.CollectionID, g.Name, g.Color, g.Position,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup: %v", err)
	}
	return g
}

// SeedItem inserts an item into groupID at position.
func SeedItem(t *testing.T, pool *pgxpool.Pool, groupID uuid.UUID, position int) domain.Item {
	t.Helper()

	suffix := uniqueSuffix()
	it := domain.Item{
		ID:       uuid.New(),
		GroupID:  groupID,
		Title:    "Item " + suffix,
		URL:      "https://example.com/" + suffix,
		Position: position,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO bookmark_items (id, group_id, title, url, position)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		it.ID, it.GroupID, it.Title, it.URL, it.Position,
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}
	return it
}

// Tree is a seeded hierarchy for one owner.
type Tree struct {
	OwnerID     uuid.UUID
	Collections []domain.Collection
	Groups      []domain.Group
	Items       []domain.Item
}

// SeedTree inserts, for a fresh owner, the given number of collections,
// groups per collection and items per group, all at dense positions.
func SeedTree(t *testing.T, pool *pgxpool.Pool, collections, groupsPer, itemsPer int) Tree {
	t.Helper()

	tree := Tree{OwnerID: uuid.New()}
	for ci := range collections {
		c := SeedCollection(t, pool, tree.OwnerID, ci)
		tree.Collections = append(tree.Collections, c)
		for gi := range groupsPer {
			g := SeedGroup(t, pool, c.ID, gi)
			tree.Groups = append(tree.Groups, g)
			for ii := range itemsPer {
				tree.Items = append(tree.Items, SeedItem(t, pool, g.ID, ii))
			}
		}
	}
	return tree
}

// CountRows returns the number of rows in table matching the optional where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	sql := "SELECT count(*) FROM " + table
	if where != "" {
		sql += " WHERE " + where
	}
	var n int
	if err := pool.QueryRow(context.Background(), sql, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows(%s): %v", table, err)
	}
	return n
}
