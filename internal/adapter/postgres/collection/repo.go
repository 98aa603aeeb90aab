// Package collection implements the Collection repository using PostgreSQL.
// Collections are the top level of the hierarchy and are scoped by owner.
package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const entity = "collection"

var columns = []string{"id", "owner_id", "name", "color", "position", "created_at", "updated_at"}

// Repo provides collection persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new collection repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Collection {
	return domain.Collection{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Color:     r.Color,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a collection by id regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableCollections).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get collection: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	c := rw.toDomain()
	return &c, nil
}

// ListByOwner returns the owner's collections ordered by position, ties by id.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Collection, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableCollections).
		Where("owner_id = ?", ownerID).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list collections: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "collections of owner", ownerID)
	}

	out := make([]domain.Collection, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Siblings returns id and position of every collection of the owner,
// ordered by position, ties by id.
func (r *Repo) Siblings(ctx context.Context, ownerID uuid.UUID) ([]domain.Sibling, error) {
	sql, args, err := postgres.Builder.
		Select("id", "position").
		From(postgres.TableCollections).
		Where("owner_id = ?", ownerID).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build collection siblings: %w", err)
	}

	var out []domain.Sibling
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "collections of owner", ownerID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts c. ID, timestamps and color are filled in when empty.
func (r *Repo) Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Color == "" {
		c.Color = domain.DefaultColor
	}

	sql, args, err := postgres.Builder.
		Insert(postgres.TableCollections).
		Columns("id", "owner_id", "name", "color", "position").
		Values(c.ID, c.OwnerID, c.Name, c.Color, c.Position).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert collection: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, c.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

// Update applies the non-nil attributes of upd and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.CollectionUpdate) (*domain.Collection, error) {
	b := postgres.Builder.
		Update(postgres.TableCollections).
		Set("updated_at", time.Now().UTC())
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Color != nil {
		b = b.Set("color", *upd.Color)
	}

	sql, args, err := b.Where("id = ?", id).Suffix("RETURNING " + returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update collection: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	updated := rw.toDomain()
	return &updated, nil
}

// UpdatePosition sets the position of a single collection.
func (r *Repo) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	sql, args, err := postgres.Builder.
		Update(postgres.TableCollections).
		Set("position", position).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update collection position: %w", err)
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

// Reorder updates positions for a batch of collections atomically.
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

// Delete removes a single collection row. Groups must be removed first.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableCollections).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete collection: %w", err)
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

// DeleteByOwner removes every collection of the owner and returns the count.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableCollections).
		Where("owner_id = ?", ownerID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete collections: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "collections of owner", ownerID)
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts collections with pgx.Batch and returns the inserted count.
// Ids and positions are taken as given.
func (r *Repo) BulkInsert(ctx context.Context, collections []domain.Collection) (int, error) {
	batch := &pgx.Batch{}
	for _, c := range collections {
		sql, args, err := postgres.Builder.
			Insert(postgres.TableCollections).
			Columns("id", "owner_id", "name", "color", "position").
			Values(c.ID, c.OwnerID, c.Name, c.Color, c.Position).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build bulk insert collection: %w", err)
		}
		batch.Queue(sql, args...)
	}

	n, err := postgres.ExecBatch(ctx, r.db, batch)
	if err != nil {
		return n, postgres.MapError(err, "collections", "")
	}
	return n, nil
}

func returning() string {
	return "id, owner_id, name, color, position, created_at, updated_at"
}
