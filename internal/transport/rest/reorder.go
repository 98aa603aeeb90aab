package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/reorder"
	"github.com/heartmarshall/bookmarks-backend/pkg/ctxutil"
)

type reorderService interface {
	Load(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID) (reorder.Snapshot, error)
	Move(ctx context.Context, kind domain.ResourceType, parentID, id uuid.UUID, toIndex int) (reorder.Snapshot, error)
	Reorder(ctx context.Context, kind domain.ResourceType, parentID uuid.UUID, orderedIDs []uuid.UUID) (reorder.Snapshot, error)
}

// ReorderHandler serves the sibling order endpoints. One handler instance
// serves all three kinds; the kind is bound when routes are registered.
type ReorderHandler struct {
	svc reorderService
	log *slog.Logger
}

// NewReorderHandler creates a ReorderHandler.
func NewReorderHandler(svc reorderService, logger *slog.Logger) *ReorderHandler {
	return &ReorderHandler{svc: svc, log: logger.With("handler", "reorder")}
}

type reorderRequest struct {
	ParentID string   `json:"parent_id"`
	IDs      []string `json:"ids"`
}

type moveRequest struct {
	ParentID string `json:"parent_id"`
	ToIndex  *int   `json:"to_index"`
}

type siblingsResponse struct {
	Kind     string            `json:"kind"`
	ParentID string            `json:"parent_id"`
	Siblings []siblingResponse `json:"siblings"`
}

func toSiblingsResponse(s reorder.Snapshot) siblingsResponse {
	return siblingsResponse{
		Kind:     s.Kind.String(),
		ParentID: s.ParentID.String(),
		Siblings: toSiblings(s.Siblings),
	}
}

// Order handles GET /api/{kind}/order?parent_id=.
func (h *ReorderHandler) Order(kind domain.ResourceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, err := parentOf(r.Context(), kind, r.URL.Query().Get("parent_id"))
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		snap, err := h.svc.Load(r.Context(), kind, parentID)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSiblingsResponse(snap))
	}
}

// Reorder handles PUT /api/{kind}/order.
func (h *ReorderHandler) Reorder(kind domain.ResourceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, h.log, err)
			return
		}
		parentID, err := parentOf(r.Context(), kind, req.ParentID)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		ids := make([]uuid.UUID, len(req.IDs))
		for i, raw := range req.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				handleError(w, r, h.log, domain.MalformedInput("invalid ids[%d] %q", i, raw))
				return
			}
			ids[i] = id
		}

		snap, err := h.svc.Reorder(r.Context(), kind, parentID, ids)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSiblingsResponse(snap))
	}
}

// Move handles POST /api/{kind}/{id}/move.
func (h *ReorderHandler) Move(kind domain.ResourceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		var req moveRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, h.log, err)
			return
		}
		if req.ToIndex == nil {
			handleError(w, r, h.log, domain.NewValidationError("to_index", "required"))
			return
		}
		parentID, err := parentOf(r.Context(), kind, req.ParentID)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}

		snap, err := h.svc.Move(r.Context(), kind, parentID, id, *req.ToIndex)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSiblingsResponse(snap))
	}
}

// parentOf resolves the sibling set parent. Collections always belong to
// the caller, so any supplied parent is ignored.
func parentOf(ctx context.Context, kind domain.ResourceType, raw string) (uuid.UUID, error) {
	if kind == domain.ResourceCollection {
		userID, ok := ctxutil.UserIDFromCtx(ctx)
		if !ok {
			return uuid.Nil, domain.ErrUnauthenticated
		}
		return userID, nil
	}
	id, err := parseID("parent_id", raw)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError("parent_id", "required")
	}
	return id, nil
}
