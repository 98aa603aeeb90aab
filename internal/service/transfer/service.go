// Package transfer exports a user's whole hierarchy to a portable document
// and restores one with full-replace semantics.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/metrics"
	"github.com/heartmarshall/bookmarks-backend/pkg/ctxutil"
)

type collectionRepo interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Collection, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	BulkInsert(ctx context.Context, collections []domain.Collection) (int, error)
}

type groupRepo interface {
	ListByCollectionIDs(ctx context.Context, collectionIDs []uuid.UUID) ([]domain.Group, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	BulkInsert(ctx context.Context, groups []domain.Group) (int, error)
}

type itemRepo interface {
	ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	BulkInsert(ctx context.Context, items []domain.Item) (int, error)
}

type snapshotStore interface {
	Save(ctx context.Context, ownerID uuid.UUID, body []byte) (string, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportResult reports what an import replaced.
type ImportResult struct {
	InsertedCollections int
	InsertedGroups      int
	InsertedItems       int
	DeletedCollections  int
	DeletedGroups       int
	DeletedItems        int
	// SnapshotKey locates the archived pre-import export, if one was taken.
	SnapshotKey string
}

// Service implements export and import.
type Service struct {
	collections collectionRepo
	groups      groupRepo
	items       itemRepo
	audit       auditLogger
	tx          txManager
	snapshots   snapshotStore
	maxEntities int
	newID       func() uuid.UUID
	log         *slog.Logger
}

// NewService creates a new transfer service.
func NewService(
	log *slog.Logger,
	collections collectionRepo,
	groups groupRepo,
	items itemRepo,
	audit auditLogger,
	tx txManager,
	cfg config.TransferConfig,
) *Service {
	return &Service{
		collections: collections,
		groups:      groups,
		items:       items,
		audit:       audit,
		tx:          tx,
		maxEntities: cfg.MaxEntities,
		newID:       uuid.New,
		log:         log.With("service", "transfer"),
	}
}

// WithSnapshots makes every import archive the caller's current hierarchy
// to store before deleting it.
func (s *Service) WithSnapshots(store snapshotStore) *Service {
	s.snapshots = store
	return s
}

// Export returns the caller's collections, their groups and the items of
// those groups. Each sequence is ordered by parent and position.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	doc, err := s.export(ctx, userID)
	metrics.TransferTotal.WithLabelValues("export", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "hierarchy exported",
		slog.String("user_id", userID.String()),
		slog.Int("collections", len(doc.Collections)),
		slog.Int("groups", len(doc.Groups)),
		slog.Int("items", len(doc.Items)),
	)
	return doc, nil
}

func (s *Service) export(ctx context.Context, ownerID uuid.UUID) (*Document, error) {
	collections, err := s.collections.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	collectionIDs := make([]uuid.UUID, len(collections))
	for i, c := range collections {
		collectionIDs[i] = c.ID
	}

	var groups []domain.Group
	if len(collectionIDs) > 0 {
		if groups, err = s.groups.ListByCollectionIDs(ctx, collectionIDs); err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
	}
	groupIDs := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}

	var items []domain.Item
	if len(groupIDs) > 0 {
		if items, err = s.items.ListByGroupIDs(ctx, groupIDs); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
	}

	return newDocument(collections, groups, items), nil
}

// Import replaces all of the caller's data with doc. The document is fully
// validated and every reference resolved before anything is deleted;
// deletion and insertion then run in one transaction.
func (s *Service) Import(ctx context.Context, doc *Document) (*ImportResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if doc == nil {
		return nil, malformed("document is required")
	}

	result, err := s.importDocument(ctx, userID, doc)
	metrics.TransferTotal.WithLabelValues("import", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	metrics.ImportedEntities.WithLabelValues("collection").Add(float64(result.InsertedCollections))
	metrics.ImportedEntities.WithLabelValues("group").Add(float64(result.InsertedGroups))
	metrics.ImportedEntities.WithLabelValues("item").Add(float64(result.InsertedItems))

	s.log.InfoContext(ctx, "hierarchy imported",
		slog.String("user_id", userID.String()),
		slog.Int("deleted_collections", result.DeletedCollections),
		slog.Int("deleted_groups", result.DeletedGroups),
		slog.Int("deleted_items", result.DeletedItems),
		slog.Int("inserted_collections", result.InsertedCollections),
		slog.Int("inserted_groups", result.InsertedGroups),
		slog.Int("inserted_items", result.InsertedItems),
		slog.String("snapshot_key", result.SnapshotKey),
	)
	return result, nil
}

func (s *Service) importDocument(ctx context.Context, userID uuid.UUID, doc *Document) (*ImportResult, error) {
	if err := doc.Validate(s.maxEntities); err != nil {
		return nil, err
	}
	p, err := doc.buildPlan(userID, s.newID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	if s.snapshots != nil {
		key, err := s.snapshot(ctx, userID)
		if err != nil {
			return nil, err
		}
		result.SnapshotKey = key
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		// bottom-up: the foreign keys do not cascade
		if result.DeletedItems, err = s.items.DeleteByOwner(txCtx, userID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if result.DeletedGroups, err = s.groups.DeleteByOwner(txCtx, userID); err != nil {
			return fmt.Errorf("delete groups: %w", err)
		}
		if result.DeletedCollections, err = s.collections.DeleteByOwner(txCtx, userID); err != nil {
			return fmt.Errorf("delete collections: %w", err)
		}

		if result.InsertedCollections, err = s.collections.BulkInsert(txCtx, p.collections); err != nil {
			return fmt.Errorf("insert collections: %w", err)
		}
		if result.InsertedGroups, err = s.groups.BulkInsert(txCtx, p.groups); err != nil {
			return fmt.Errorf("insert groups: %w", err)
		}
		if result.InsertedItems, err = s.items.BulkInsert(txCtx, p.items); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeHierarchy,
			Action:     domain.AuditActionImport,
			Changes: map[string]any{
				"deleted":  map[string]any{"collections": result.DeletedCollections, "groups": result.DeletedGroups, "items": result.DeletedItems},
				"inserted": map[string]any{"collections": result.InsertedCollections, "groups": result.InsertedGroups, "items": result.InsertedItems},
				"snapshot": result.SnapshotKey,
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// snapshot archives the current hierarchy of ownerID and returns its key.
func (s *Service) snapshot(ctx context.Context, ownerID uuid.UUID) (string, error) {
	current, err := s.export(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	body, err := json.Marshal(current)
	if err != nil {
		return "", fmt.Errorf("snapshot: encode: %w", err)
	}
	key, err := s.snapshots.Save(ctx, ownerID, body)
	if err != nil {
		return "", fmt.Errorf("snapshot: save: %w", err)
	}
	return key, nil
}

func newDocument(collections []domain.Collection, groups []domain.Group, items []domain.Item) *Document {
	doc := &Document{
		Collections: make([]CollectionRecord, len(collections)),
		Groups:      make([]GroupRecord, len(groups)),
		Items:       make([]ItemRecord, len(items)),
	}
	for i, c := range collections {
		doc.Collections[i] = CollectionRecord{
			ID:       RecordID(c.ID.String()),
			OwnerID:  c.OwnerID.String(),
			Name:     c.Name,
			Color:    c.Color,
			Position: c.Position,
		}
	}
	for i, g := range groups {
		doc.Groups[i] = GroupRecord{
			ID:           RecordID(g.ID.String()),
			CollectionID: RecordID(g.CollectionID.String()),
			Name:         g.Name,
			Color:        g.Color,
			Position:     g.Position,
		}
	}
	for i, it := range items {
		doc.Items[i] = ItemRecord{
			ID:          RecordID(it.ID.String()),
			GroupID:     RecordID(it.GroupID.String()),
			Title:       it.Title,
			URL:         it.URL,
			Description: it.Description,
			Favicon:     it.Favicon,
			Position:    it.Position,
		}
	}
	return doc
}
