// Package sharetoken implements the ShareToken repository using PostgreSQL.
// Tokens reference resources without a foreign key, so they survive the
// deletion of what they point at.
package sharetoken

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const entity = "share_token"

var columns = []string{"id", "token", "resource_type", "resource_id", "issuer_id", "expires_at", "created_at"}

// Repo provides share token persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new share token repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	Token        string     `db:"token"`
	ResourceType string     `db:"resource_type"`
	ResourceID   uuid.UUID  `db:"resource_id"`
	IssuerID     uuid.UUID  `db:"issuer_id"`
	ExpiresAt    *time.Time `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.ShareToken {
	return domain.ShareToken{
		ID:           r.ID,
		Token:        r.Token,
		ResourceType: domain.ResourceType(r.ResourceType),
		ResourceID:   r.ResourceID,
		IssuerID:     r.IssuerID,
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
	}
}

// Create persists a new token. A token string collision returns
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, t *domain.ShareToken) (*domain.ShareToken, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	sql, args, err := postgres.Builder.
		Insert(postgres.TableShareTokens).
		Columns("id", "token", "resource_type", "resource_id", "issuer_id", "expires_at").
		Values(t.ID, t.Token, string(t.ResourceType), t.ResourceID, t.IssuerID, t.ExpiresAt).
		Suffix("RETURNING id, token, resource_type, resource_id, issuer_id, expires_at, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert share token: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, t.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

// GetByToken returns the token matching both type and token string.
func (r *Repo) GetByToken(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableShareTokens).
		Where("token = ?", token).
		Where("resource_type = ?", string(resourceType)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get share token: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, resourceType)
	}

	t := rw.toDomain()
	return &t, nil
}

// ListByResource returns the tokens issued for one resource, newest first.
func (r *Repo) ListByResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(postgres.TableShareTokens).
		Where("resource_type = ?", string(ref.Type)).
		Where("resource_id = ?", ref.ID).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list share tokens: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "share tokens of", ref)
	}

	out := make([]domain.ShareToken, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// DeleteByToken removes a token issued by issuerID. It returns
// domain.ErrNotFound when no such token exists for that issuer.
func (r *Repo) DeleteByToken(ctx context.Context, issuerID uuid.UUID, token string) (*domain.ShareToken, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableShareTokens).
		Where("token = ?", token).
		Where("issuer_id = ?", issuerID).
		Suffix("RETURNING id, token, resource_type, resource_id, issuer_id, expires_at, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete share token: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, "")
	}

	t := rw.toDomain()
	return &t, nil
}

// DeleteExpired removes tokens whose expiry is before now and returns how
// many were deleted. Tokens without an expiry are never removed.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	sql, args, err := postgres.Builder.
		Delete(postgres.TableShareTokens).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", now).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired share tokens: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, entity, "")
	}
	return int(tag.RowsAffected()), nil
}
