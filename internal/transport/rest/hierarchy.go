package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/hierarchy"
)

// hierarchyService defines the operations HierarchyHandler needs.
type hierarchyService interface {
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	CreateCollection(ctx context.Context, input hierarchy.CreateCollectionInput) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, input hierarchy.UpdateCollectionInput) (*domain.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	ListGroups(ctx context.Context, collectionID uuid.UUID) ([]domain.Group, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	CreateGroup(ctx context.Context, input hierarchy.CreateGroupInput) (*domain.Group, error)
	UpdateGroup(ctx context.Context, input hierarchy.UpdateGroupInput) (*domain.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, groupID uuid.UUID) ([]domain.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	CreateItem(ctx context.Context, input hierarchy.CreateItemInput) (*domain.Item, error)
	AddItems(ctx context.Context, input hierarchy.AddItemsInput) ([]domain.Item, error)
	UpdateItem(ctx context.Context, input hierarchy.UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// HierarchyHandler serves CRUD endpoints for collections, groups and items.
type HierarchyHandler struct {
	svc hierarchyService
	log *slog.Logger
}

// NewHierarchyHandler creates a HierarchyHandler.
func NewHierarchyHandler(svc hierarchyService, logger *slog.Logger) *HierarchyHandler {
	return &HierarchyHandler{svc: svc, log: logger.With("handler", "hierarchy")}
}

type containerRequest struct {
	CollectionID string  `json:"collection_id"`
	Name         *string `json:"name"`
	Color        *string `json:"color"`
}

type itemRequest struct {
	GroupID     string  `json:"group_id"`
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Favicon     *string `json:"favicon"`
}

type addItemsRequest struct {
	URLs []string `json:"urls"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

// ListCollections handles GET /api/collections.
func (h *HierarchyHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.ListCollections(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(collections, toCollection))
}

// GetCollection handles GET /api/collections/{id}.
func (h *HierarchyHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.GetCollection(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollection(*c))
}

// CreateCollection handles POST /api/collections.
func (h *HierarchyHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req containerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.CreateCollection(r.Context(), hierarchy.CreateCollectionInput{
		Name:  deref(req.Name),
		Color: deref(req.Color),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCollection(*c))
}

// UpdateCollection handles PATCH /api/collections/{id}.
func (h *HierarchyHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req containerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.UpdateCollection(r.Context(), hierarchy.UpdateCollectionInput{ID: id, Name: req.Name, Color: req.Color})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollection(*c))
}

// DeleteCollection handles DELETE /api/collections/{id}.
func (h *HierarchyHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteCollection)
}

// ---------------------------------------------------------------------------
// Groups
// ---------------------------------------------------------------------------

// ListGroups handles GET /api/collections/{id}/groups.
func (h *HierarchyHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	groups, err := h.svc.ListGroups(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(groups, toGroup))
}

// GetGroup handles GET /api/groups/{id}.
func (h *HierarchyHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	g, err := h.svc.GetGroup(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroup(*g))
}

// CreateGroup handles POST /api/groups.
func (h *HierarchyHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req containerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	collectionID, err := parseID("collection_id", req.CollectionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	g, err := h.svc.CreateGroup(r.Context(), hierarchy.CreateGroupInput{
		CollectionID: collectionID,
		Name:         deref(req.Name),
		Color:        deref(req.Color),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroup(*g))
}

// UpdateGroup handles PATCH /api/groups/{id}.
func (h *HierarchyHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req containerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	g, err := h.svc.UpdateGroup(r.Context(), hierarchy.UpdateGroupInput{ID: id, Name: req.Name, Color: req.Color})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroup(*g))
}

// DeleteGroup handles DELETE /api/groups/{id}.
func (h *HierarchyHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteGroup)
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// ListItems handles GET /api/groups/{id}/items.
func (h *HierarchyHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	items, err := h.svc.ListItems(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toItem))
}

// GetItem handles GET /api/items/{id}.
func (h *HierarchyHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toItem(*it))
}

// CreateItem handles POST /api/items.
func (h *HierarchyHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	groupID, err := parseID("group_id", req.GroupID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	it, err := h.svc.CreateItem(r.Context(), hierarchy.CreateItemInput{
		GroupID:     groupID,
		Title:       deref(req.Title),
		URL:         deref(req.URL),
		Description: req.Description,
		Favicon:     req.Favicon,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItem(*it))
}

// AddItems handles POST /api/groups/{id}/items.
func (h *HierarchyHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req addItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	items, err := h.svc.AddItems(r.Context(), hierarchy.AddItemsInput{GroupID: id, URLs: req.URLs})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapSlice(items, toItem))
}

// UpdateItem handles PATCH /api/items/{id}.
func (h *HierarchyHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	it, err := h.svc.UpdateItem(r.Context(), hierarchy.UpdateItemInput{
		ID:          id,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Favicon:     req.Favicon,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toItem(*it))
}

// DeleteItem handles DELETE /api/items/{id}.
func (h *HierarchyHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteItem)
}

func (h *HierarchyHandler) delete(w http.ResponseWriter, r *http.Request, del func(context.Context, uuid.UUID) error) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
