// Package share issues and resolves share tokens: unguessable strings that
// grant anonymous read access to one collection, group or item subtree.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/metrics"
	"github.com/heartmarshall/bookmarks-backend/pkg/ctxutil"
)

// maxIssueAttempts bounds retries on token collisions.
const maxIssueAttempts = 3

type tokenRepo interface {
	Create(ctx context.Context, t *domain.ShareToken) (*domain.ShareToken, error)
	GetByToken(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error)
	ListByResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error)
	DeleteByToken(ctx context.Context, issuerID uuid.UUID, token string) (*domain.ShareToken, error)
}

type ownershipRepo interface {
	OwnerOf(ctx context.Context, ref domain.ResourceRef) (uuid.UUID, error)
}

type collectionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
}

type groupRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error)
}

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error)
	ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error)
}

// tokenCache is a read-through cache of token rows. Get returns nil, nil
// on a miss.
type tokenCache interface {
	Get(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error)
	Set(ctx context.Context, t domain.ShareToken) error
	Delete(ctx context.Context, resourceType domain.ResourceType, token string) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements share token issuance and resolution.
type Service struct {
	tokens      tokenRepo
	owners      ownershipRepo
	collections collectionRepo
	groups      groupRepo
	items       itemRepo
	audit       auditLogger
	tx          txManager
	cache       tokenCache
	cfg         config.ShareConfig
	log         *slog.Logger
	now         func() time.Time
	newToken    func(n int) (string, error)
}

// NewService creates a new share service.
func NewService(
	logger *slog.Logger,
	tokens tokenRepo,
	owners ownershipRepo,
	collections collectionRepo,
	groups groupRepo,
	items itemRepo,
	audit auditLogger,
	tx txManager,
	cfg config.ShareConfig,
) *Service {
	return &Service{
		tokens:      tokens,
		owners:      owners,
		collections: collections,
		groups:      groups,
		items:       items,
		audit:       audit,
		tx:          tx,
		cfg:         cfg,
		log:         logger.With("service", "share"),
		now:         time.Now,
		newToken:    generateToken,
	}
}

// WithCache enables read-through caching of token lookups.
func (s *Service) WithCache(c tokenCache) *Service {
	s.cache = c
	return s
}

// ---------------------------------------------------------------------------
// Issue
// ---------------------------------------------------------------------------

// IssueInput names the resource to share and an optional lifetime.
type IssueInput struct {
	ResourceType domain.ResourceType
	ResourceID   uuid.UUID
	ExpiresIn    *time.Duration
}

// Validate checks the input against the configured maximum lifetime.
func (i IssueInput) Validate(maxExpiresIn time.Duration) error {
	var errs []domain.FieldError
	if !i.ResourceType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "resource_type", Message: "must be collection, group or item"})
	}
	if i.ResourceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "resource_id", Message: "required"})
	}
	if i.ExpiresIn != nil {
		switch {
		case *i.ExpiresIn <= 0:
			errs = append(errs, domain.FieldError{Field: "expires_in", Message: "must be positive"})
		case maxExpiresIn > 0 && *i.ExpiresIn > maxExpiresIn:
			errs = append(errs, domain.FieldError{Field: "expires_in", Message: fmt.Sprintf("max %s", maxExpiresIn)})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Issued is a persisted token together with its public URL.
type Issued struct {
	Token domain.ShareToken
	URL   string
}

// Issue creates a token for a resource owned by the caller.
func (s *Service) Issue(ctx context.Context, in IssueInput) (*Issued, error) {
	if err := in.Validate(s.cfg.MaxExpiresIn); err != nil {
		return nil, err
	}
	ref := domain.ResourceRef{Type: in.ResourceType, ID: in.ResourceID}
	userID, err := s.authorize(ctx, ref)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if in.ExpiresIn != nil {
		t := s.now().Add(*in.ExpiresIn).UTC()
		expiresAt = &t
	}

	var created *domain.ShareToken
	for attempt := 1; ; attempt++ {
		created, err = s.issueOnce(ctx, userID, ref, expiresAt)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrAlreadyExists) || attempt == maxIssueAttempts {
			return nil, err
		}
		s.log.WarnContext(ctx, "share token collision, retrying", slog.Int("attempt", attempt))
	}

	metrics.SharesIssued.WithLabelValues(string(ref.Type)).Inc()
	s.log.InfoContext(ctx, "share token issued",
		slog.String("user_id", userID.String()),
		slog.String("resource", ref.String()),
		slog.Bool("expires", expiresAt != nil),
	)
	return &Issued{Token: *created, URL: s.URL(ref.Type, created.Token)}, nil
}

// issueOnce persists one freshly generated token. Each attempt runs in its
// own transaction: a unique violation aborts the one it happens in.
func (s *Service) issueOnce(ctx context.Context, userID uuid.UUID, ref domain.ResourceRef, expiresAt *time.Time) (*domain.ShareToken, error) {
	token, err := s.newToken(s.cfg.TokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	var created *domain.ShareToken
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.tokens.Create(txCtx, &domain.ShareToken{
			Token:        token,
			ResourceType: ref.Type,
			ResourceID:   ref.ID,
			IssuerID:     userID,
			ExpiresAt:    expiresAt,
		})
		if err != nil {
			return fmt.Errorf("create share token: %w", err)
		}

		changes := map[string]any{"share_token_id": created.ID.String()}
		if expiresAt != nil {
			changes["expires_at"] = expiresAt.Format(time.RFC3339)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeOf(ref.Type),
			EntityID:   &ref.ID,
			Action:     domain.AuditActionShare,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// URL builds the public link of a token.
func (s *Service) URL(resourceType domain.ResourceType, token string) string {
	return fmt.Sprintf("%s/shared/%s/%s", s.cfg.PublicBaseURL, resourceType, token)
}

// ---------------------------------------------------------------------------
// Owner-side management
// ---------------------------------------------------------------------------

// ListForResource returns the tokens issued for a resource the caller owns.
func (s *Service) ListForResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error) {
	if !ref.Type.IsValid() {
		return nil, domain.MalformedInput("unknown resource type %q", ref.Type)
	}
	if _, err := s.authorize(ctx, ref); err != nil {
		return nil, err
	}
	tokens, err := s.tokens.ListByResource(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list share tokens: %w", err)
	}
	return tokens, nil
}

// Revoke deletes a token issued by the caller. Tokens of other issuers
// report domain.ErrNotFound.
func (s *Service) Revoke(ctx context.Context, token string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	if token == "" {
		return domain.NewValidationError("token", "required")
	}

	var revoked *domain.ShareToken
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if revoked, err = s.tokens.DeleteByToken(txCtx, userID, token); err != nil {
			return fmt.Errorf("revoke share token: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeShareToken,
			EntityID:   &revoked.ID,
			Action:     domain.AuditActionRevoke,
			Changes: map[string]any{
				"resource_type": string(revoked.ResourceType),
				"resource_id":   revoked.ResourceID.String(),
			},
		})
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, revoked.ResourceType, token); err != nil {
			s.log.WarnContext(ctx, "share cache invalidation failed", slog.String("error", err.Error()))
		}
	}
	s.log.InfoContext(ctx, "share token revoked",
		slog.String("user_id", userID.String()),
		slog.String("resource", revoked.Ref().String()),
	)
	return nil
}

func (s *Service) authorize(ctx context.Context, ref domain.ResourceRef) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	owner, err := s.owners.OwnerOf(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve owner of %s: %w", ref, err)
	}
	if owner != userID {
		return uuid.Nil, fmt.Errorf("%s: %w", ref, domain.ErrUnauthorized)
	}
	return userID, nil
}
