package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/share"
)

type shareService interface {
	Issue(ctx context.Context, in share.IssueInput) (*share.Issued, error)
	ListForResource(ctx context.Context, ref domain.ResourceRef) ([]domain.ShareToken, error)
	Revoke(ctx context.Context, token string) error
	Resolve(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.SharedSubtree, error)
	URL(resourceType domain.ResourceType, token string) string
}

// ShareHandler serves share token management and the public resolve
// endpoint.
type ShareHandler struct {
	svc shareService
	log *slog.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(svc shareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{svc: svc, log: logger.With("handler", "share")}
}

type issueRequest struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	// ExpiresIn is the lifetime in seconds; absent means no expiry.
	ExpiresIn *int64 `json:"expires_in"`
}

// Issue handles POST /api/shares.
func (h *ShareHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	ref, err := parseRef(req.ResourceType, req.ResourceID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	in := share.IssueInput{ResourceType: ref.Type, ResourceID: ref.ID}
	if req.ExpiresIn != nil {
		d := time.Duration(*req.ExpiresIn) * time.Second
		in.ExpiresIn = &d
	}

	issued, err := h.svc.Issue(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShareToken(issued.Token, issued.URL))
}

// List handles GET /api/shares?resource_type=&resource_id=.
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := parseRef(q.Get("resource_type"), q.Get("resource_id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	tokens, err := h.svc.ListForResource(r.Context(), ref)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(tokens, func(t domain.ShareToken) shareTokenResponse {
		return toShareToken(t, h.svc.URL(t.ResourceType, t.Token))
	}))
}

// Revoke handles DELETE /api/shares/{token}.
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Revoke(r.Context(), r.PathValue("token")); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resolve handles GET /api/shared/{type}/{token}. It needs no credentials.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	resourceType, err := domain.ParseResourceType(r.PathValue("type"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	subtree, err := h.svc.Resolve(r.Context(), resourceType, r.PathValue("token"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, toShared(subtree))
}

func parseRef(rawType, rawID string) (domain.ResourceRef, error) {
	resourceType, err := domain.ParseResourceType(rawType)
	if err != nil {
		return domain.ResourceRef{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.ResourceRef{}, domain.MalformedInput("invalid resource_id %q", rawID)
	}
	return domain.ResourceRef{Type: resourceType, ID: id}, nil
}
