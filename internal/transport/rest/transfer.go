package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/transfer"
)

type transferService interface {
	Export(ctx context.Context) (*transfer.Document, error)
	Import(ctx context.Context, doc *transfer.Document) (*transfer.ImportResult, error)
}

// TransferHandler serves backup export and import.
type TransferHandler struct {
	svc      transferService
	maxBytes int64
	log      *slog.Logger
}

// NewTransferHandler creates a TransferHandler. maxBytes caps the import
// body; zero disables the cap.
func NewTransferHandler(svc transferService, maxBytes int64, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{svc: svc, maxBytes: maxBytes, log: logger.With("handler", "transfer")}
}

type importResponse struct {
	Collections int    `json:"collections"`
	Groups      int    `json:"groups"`
	Items       int    `json:"items"`
	Replaced    counts `json:"replaced"`
	SnapshotKey string `json:"snapshot_key,omitempty"`
}

type counts struct {
	Collections int `json:"collections"`
	Groups      int `json:"groups"`
	Items       int `json:"items"`
}

// Export handles GET /api/bookmarks/export.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="bookmarks-backup.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// Import handles POST /api/bookmarks/import. The body is a backup document
// in the current or the legacy board/folder/link layout.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, r, h.log, domain.MalformedInput("document exceeds %d bytes", tooLarge.Limit))
			return
		}
		handleError(w, r, h.log, domain.MalformedInput("read body: %v", err))
		return
	}

	doc, err := transfer.ParseDocument(raw)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	res, err := h.svc.Import(r.Context(), doc)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Collections: res.InsertedCollections,
		Groups:      res.InsertedGroups,
		Items:       res.InsertedItems,
		Replaced: counts{
			Collections: res.DeletedCollections,
			Groups:      res.DeletedGroups,
			Items:       res.DeletedItems,
		},
		SnapshotKey: res.SnapshotKey,
	})
}
