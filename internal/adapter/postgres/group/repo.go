// Package group implements the Group repository using PostgreSQL.
package group

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const entity = "group"

var columns = []string{"id", "collection_id", "name", "color", "position", "created_at", "updated_at"}

// Repo provides group persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new group repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	CollectionID uuid.UUID `db:"collection_id"`
	Name         string    `db:"name"`
	Color        string    `db:"color"`
	Position     int       `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Group {
	return domain.Group{
		ID:           r.ID,
		CollectionID: r.CollectionID,
		Name:         r.Name,
		Color:        r.Color,
		Position:     r.Position,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toDomain(rows []row) []domain.Group {
	out := make([]domain.Group, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out
}

// ownedCollections selects the ids of every collection of an owner.
func ownedCollections(ownerID uuid.UUID) sq.SelectBuilder {
	return postgres.Builder.
		Select("id").
		From(postgres.TableCollections).
		Where("owner_id = ?", ownerID)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a group by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableGroups).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get group: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	g := rw.toDomain()
	return &g, nil
}

// ListByCollection returns the groups of one collection ordered by position, ties by id.
func (r *Repo) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error) {
	return r.ListByCollectionIDs(ctx, []uuid.UUID{collectionID})
}

// ListByCollectionIDs returns the groups of several collections, ordered
// by collection, then position, then id.
func (r *Repo) ListByCollectionIDs(ctx context.Context, collectionIDs []uuid.UUID) ([]domain.Group, error) {
	if len(collectionIDs) == 0 {
		return []domain.Group{}, nil
	}

	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableGroups).
		Where("collection_id = ANY(?)", collectionIDs).
		OrderBy("collection_id", "position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list groups: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "groups", "")
	}
	return toDomain(rows), nil
}

// Siblings returns id and position of every group in a collection.
func (r *Repo) Siblings(ctx context.Context, collectionID uuid.UUID) ([]domain.Sibling, error) {
	sql, args, err := postgres.Builder.
		Select("id", "position").
		From(postgres.TableGroups).
		Where("collection_id = ?", collectionID).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group siblings: %w", err)
	}

	var out []domain.Sibling
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "groups of collection", collectionID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts g. ID and color are filled in when empty.
func (r *Repo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Color == "" {
		g.Color = domain.DefaultColor
	}

	sql, args, err := postgres.Builder.
		Insert(postgres.TableGroups).
		Columns("id", "collection_id", "name", "color", "position").
		Values(g.ID, g.CollectionID, g.Name, g.Color, g.Position).
		Suffix("RETURNING id, collection_id, name, color, position, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert group: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, g.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

// Update applies the non-nil attributes of upd.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.GroupUpdate) (*domain.Group, error) {
	b := postgres.Builder.
		Update(postgres.TableGroups).
		Set("updated_at", time.Now().UTC())
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Color != nil {
		b = b.Set("color", *upd.Color)
	}

	sql, args, err := b.Where("id = ?", id).
		Suffix("RETURNING id, collection_id, name, color, position, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update group: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	updated := rw.toDomain()
	return &updated, nil
}

// UpdatePosition sets the position of a single group.
func (r *Repo) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	sql, args, err := postgres.Builder.
		Update(postgres.TableGroups).
		Set("position", position).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update group position: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// Reorder updates positions for a batch of groups atomically.
func (r *Repo) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			if err := r.UpdatePosition(txCtx, item.ID, item.Position); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a single group row. Items must be removed first.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableGroups).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete group: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// DeleteByCollection removes every group of a collection.
func (r *Repo) DeleteByCollection(ctx context.Context, collectionID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableGroups).
		Where("collection_id = ?", collectionID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete groups: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "groups of collection", collectionID)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByOwner removes every group inside the owner's collections.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableGroups).
		Where(sq.Expr("collection_id IN (?)", ownedCollections(ownerID))).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete groups of owner: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "groups of owner", ownerID)
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts groups with pgx.Batch and returns the inserted count.
func (r *Repo) BulkInsert(ctx context.Context, groups []domain.Group) (int, error) {
	batch := &pgx.Batch{}
	for _, g := range groups {
		sql, args, err := postgres.Builder.
			Insert(postgres.TableGroups).
			Columns("id", "collection_id", "name", "color", "position").
			Values(g.ID, g.CollectionID, g.Name, g.Color, g.Position).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build bulk insert group: %w", err)
		}
		batch.Queue(sql, args...)
	}

	n, err := postgres.ExecBatch(ctx, r.db, batch)
	if err != nil {
		return n, postgres.MapError(err, "groups", "")
	}
	return n, nil
}
