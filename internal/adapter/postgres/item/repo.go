// Package item implements the Item repository using PostgreSQL.
package item

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

const entity = "item"

const returning = "RETURNING id, group_id, title, url, description, favicon, position, created_at, updated_at"

var columns = []string{"id", "group_id", "title", "url", "description", "favicon", "position", "created_at", "updated_at"}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new item repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	GroupID     uuid.UUID `db:"group_id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Description *string   `db:"description"`
	Favicon     *string   `db:"favicon"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Item {
	return domain.Item{
		ID:          r.ID,
		GroupID:     r.GroupID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Favicon:     r.Favicon,
		Position:    r.Position,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomain(rows []row) []domain.Item {
	out := make([]domain.Item, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out
}

// nullable maps an empty string to NULL.
func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableItems).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	it := rw.toDomain()
	return &it, nil
}

// ListByGroup returns the items of one group ordered by position, ties by id.
func (r *Repo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error) {
	return r.ListByGroupIDs(ctx, []uuid.UUID{groupID})
}

// ListByGroupIDs returns the items of several groups ordered by group,
// then position, then id.
func (r *Repo) ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error) {
	if len(groupIDs) == 0 {
		return []domain.Item{}, nil
	}

	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableItems).
		Where("group_id = ANY(?)", groupIDs).
		OrderBy("group_id", "position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "items", "")
	}
	return toDomain(rows), nil
}

// Siblings returns id and position of every item in a group.
func (r *Repo) Siblings(ctx context.Context, groupID uuid.UUID) ([]domain.Sibling, error) {
	sql, args, err := postgres.Builder.
		Select("id", "position").
		From(postgres.TableItems).
		Where("group_id = ?", groupID).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item siblings: %w", err)
	}

	var out []domain.Sibling
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "items of group", groupID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts it. The id is generated when empty.
func (r *Repo) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}

	sql, args, err := postgres.Builder.
		Insert(postgres.TableItems).
		Columns("id", "group_id", "title", "url", "description", "favicon", "position").
		Values(it.ID, it.GroupID, it.Title, it.URL, nullable(it.Description), nullable(it.Favicon), it.Position).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, it.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

// Update applies the non-nil attributes of upd. Empty description or
// favicon clears the column.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.ItemUpdate) (*domain.Item, error) {
	b := postgres.Builder.
		Update(postgres.TableItems).
		Set("updated_at", time.Now().UTC())
	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
	}
	if upd.URL != nil {
		b = b.Set("url", *upd.URL)
	}
	if upd.Description != nil {
		b = b.Set("description", nullable(upd.Description))
	}
	if upd.Favicon != nil {
		b = b.Set("favicon", nullable(upd.Favicon))
	}

	sql, args, err := b.Where("id = ?", id).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	updated := rw.toDomain()
	return &updated, nil
}

// UpdatePosition sets the position of a single item.
func (r *Repo) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	sql, args, err := postgres.Builder.
		Update(postgres.TableItems).
		Set("position", position).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item position: %w", err)
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

// Reorder updates positions for a batch of items atomically.
func (r *Repo) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		for _, it := range items {
			if err := r.UpdatePosition(txCtx, it.ID, it.Position); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a single item.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableItems).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item: %w", err)
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

// DeleteByGroup removes every item of a group.
func (r *Repo) DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	return r.deleteWhere(ctx, sq.Expr("group_id = ?", groupID), "items of group", groupID)
}

// DeleteByCollection removes every item inside the groups of a collection.
func (r *Repo) DeleteByCollection(ctx context.Context, collectionID uuid.UUID) (int, error) {
	groups := postgres.Builder.
		Select("id").
		From(postgres.TableGroups).
		Where("collection_id = ?", collectionID)
	return r.deleteWhere(ctx, sq.Expr("group_id IN (?)", groups), "items of collection", collectionID)
}

// DeleteByOwner removes every item below the owner's collections.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	groups := postgres.Builder.
		Select("g.id").
		From(postgres.TableGroups + " g").
		Join(postgres.TableCollections + " c ON c.id = g.collection_id").
		Where("c.owner_id = ?", ownerID)
	return r.deleteWhere(ctx, sq.Expr("group_id IN (?)", groups), "items of owner", ownerID)
}

func (r *Repo) deleteWhere(ctx context.Context, pred sq.Sqlizer, scope string, id uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableItems).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", scope, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, scope, id)
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts items with pgx.Batch and returns the inserted count.
func (r *Repo) BulkInsert(ctx context.Context, items []domain.Item) (int, error) {
	batch := &pgx.Batch{}
	for _, it := range items {
		sql, args, err := postgres.Builder.
			Insert(postgres.TableItems).
			Columns("id", "group_id", "title", "url", "description", "favicon", "position").
			Values(it.ID, it.GroupID, it.Title, it.URL, nullable(it.Description), nullable(it.Favicon), it.Position).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build bulk insert item: %w", err)
		}
		batch.Queue(sql, args...)
	}

	n, err := postgres.ExecBatch(ctx, r.db, batch)
	if err != nil {
		return n, postgres.MapError(err, "items", "")
	}
	return n, nil
}
