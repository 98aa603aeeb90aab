package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/domain"
	"github.com/heartmarshall/bookmarks-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Hierarchy *HierarchyHandler
	Reorder   *ReorderHandler
	Transfer  *TransferHandler
	Share     *ShareHandler
}

// RouterConfig holds the cross-cutting settings of the HTTP surface.
type RouterConfig struct {
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Validator tokenValidator
	Limiter   *middleware.RateLimiter
}

// NewRouter mounts every endpoint on a ServeMux and wraps it in the
// middleware chain. Probes and /metrics bypass the chain.
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/collections", h.Hierarchy.ListCollections)
	api.HandleFunc("POST /api/collections", h.Hierarchy.CreateCollection)
	api.HandleFunc("GET /api/collections/{id}", h.Hierarchy.GetCollection)
	api.HandleFunc("PATCH /api/collections/{id}", h.Hierarchy.UpdateCollection)
	api.HandleFunc("DELETE /api/collections/{id}", h.Hierarchy.DeleteCollection)
	api.HandleFunc("GET /api/collections/{id}/groups", h.Hierarchy.ListGroups)

	api.HandleFunc("POST /api/groups", h.Hierarchy.CreateGroup)
	api.HandleFunc("GET /api/groups/{id}", h.Hierarchy.GetGroup)
	api.HandleFunc("PATCH /api/groups/{id}", h.Hierarchy.UpdateGroup)
	api.HandleFunc("DELETE /api/groups/{id}", h.Hierarchy.DeleteGroup)
	api.HandleFunc("GET /api/groups/{id}/items", h.Hierarchy.ListItems)
	api.HandleFunc("POST /api/groups/{id}/items", h.Hierarchy.AddItems)

	api.HandleFunc("POST /api/items", h.Hierarchy.CreateItem)
	api.HandleFunc("GET /api/items/{id}", h.Hierarchy.GetItem)
	api.HandleFunc("PATCH /api/items/{id}", h.Hierarchy.UpdateItem)
	api.HandleFunc("DELETE /api/items/{id}", h.Hierarchy.DeleteItem)

	for _, kind := range []domain.ResourceType{domain.ResourceCollection, domain.ResourceGroup, domain.ResourceItem} {
		base := "/api/" + kind.String() + "s"
		api.HandleFunc("GET "+base+"/order", h.Reorder.Order(kind))
		api.HandleFunc("PUT "+base+"/order", h.Reorder.Reorder(kind))
		api.HandleFunc("POST "+base+"/{id}/move", h.Reorder.Move(kind))
	}

	api.HandleFunc("GET /api/bookmarks/export", h.Transfer.Export)
	api.HandleFunc("POST /api/bookmarks/import", h.Transfer.Import)

	api.HandleFunc("POST /api/shares", h.Share.Issue)
	api.HandleFunc("GET /api/shares", h.Share.List)
	api.HandleFunc("DELETE /api/shares/{token}", h.Share.Revoke)

	resolve := http.Handler(http.HandlerFunc(h.Share.Resolve))
	if cfg.Limiter != nil {
		resolve = cfg.Limiter.Limit("share_resolve", cfg.RateLimit.ShareResolve, cfg.RateLimit.Window)(resolve)
	}
	api.Handle("GET /api/shared/{type}/{token}", resolve)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Auth(cfg.Validator),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/api/", chain(api))

	return mux
}
