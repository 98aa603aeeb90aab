// Package ownership resolves the owner at the root of an entity's parent chain.
package ownership

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

// Repo answers ownership questions with a single join per lookup.
type Repo struct {
	db postgres.DB
}

// New creates a new ownership repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// OwnerOf returns the owner of the collection at the top of ref's chain.
// A missing entity at any level yields domain.ErrNotFound.
func (r *Repo) OwnerOf(ctx context.Context, ref domain.ResourceRef) (uuid.UUID, error) {
	var b sq.SelectBuilder
	switch ref.Type {
	case domain.ResourceCollection:
		b = postgres.Builder.
			Select("c.owner_id").
			From(postgres.TableCollections + " c").
			Where("c.id = ?", ref.ID)
	case domain.ResourceGroup:
		b = postgres.Builder.
			Select("c.owner_id").
			From(postgres.TableGroups + " g").
			Join(postgres.TableCollections + " c ON c.id = g.collection_id").
			Where("g.id = ?", ref.ID)
	case domain.ResourceItem:
		b = postgres.Builder.
			Select("c.owner_id").
			From(postgres.TableItems + " i").
			Join(postgres.TableGroups + " g ON g.id = i.group_id").
			Join(postgres.TableCollections + " c ON c.id = g.collection_id").
			Where("i.id = ?", ref.ID)
	default:
		return uuid.Nil, domain.MalformedInput("unknown resource type %q", ref.Type)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build owner lookup: %w", err)
	}

	var owner uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&owner); err != nil {
		return uuid.Nil, postgres.MapError(err, string(ref.Type), ref.ID)
	}
	return owner, nil
}
