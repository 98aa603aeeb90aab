package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/service/reorder"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error    string               `json:"error"`
	Kind     domain.ErrorKind     `json:"kind"`
	Fields   []fieldErrorResponse `json:"fields,omitempty"`
	Siblings []siblingResponse    `json:"siblings,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// statusOf maps an error kind to its HTTP status.
func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindMalformedInput:
		return http.StatusBadRequest
	case domain.KindValidation, domain.KindDanglingReference:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindExpired:
		return http.StatusGone
	case domain.KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders err. Store failures are logged and their message is
// not exposed.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := domain.KindOf(err)
	status := statusOf(kind)
	resp := errorResponse{Error: err.Error(), Kind: kind}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
	}

	// a failed reorder carries the order the client must reset to
	var rerr *reorder.RecoveryError
	if errors.As(err, &rerr) && rerr.ReloadErr == nil {
		resp.Siblings = toSiblings(rerr.Snapshot.Siblings)
	}

	if status == http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// decodeJSON reads a JSON body into v. Unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.MalformedInput("request body is required")
		}
		return domain.MalformedInput("invalid request body: %v", err)
	}
	return nil
}

// pathID parses the {name} path segment as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.MalformedInput("invalid %s %q", name, r.PathValue(name))
	}
	return id, nil
}

// parseID parses an optional UUID from a request field.
func parseID(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.MalformedInput("invalid %s %q", field, raw)
	}
	return id, nil
}
