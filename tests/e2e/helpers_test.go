//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/collection"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/group"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/ownership"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/sharetoken"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/redis/sharecache"
	authpkg "github.com/heartmarshall/bookmarks-backend/internal/auth"
	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/service/hierarchy"
	"github.com/heartmarshall/bookmarks-backend/internal/service/reorder"
	"github.com/heartmarshall/bookmarks-backend/internal/service/share"
	"github.com/heartmarshall/bookmarks-backend/internal/service/transfer"
	"github.com/heartmarshall/bookmarks-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookmarks-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Redis  *miniredis.Miniredis
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

type serverOptions struct {
	shareResolveLimit int
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and an in-process Redis.
func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWith(t, serverOptions{})
}

func setupTestServerWith(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	// 1. Stores.
	pool := testhelper.SetupTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	collections := collection.New(pool, txm)
	groups := group.New(pool, txm)
	items := item.New(pool, txm)
	owners := ownership.New(pool)
	tokens := sharetoken.New(pool)
	auditRepo := audit.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	// 5. Services.
	reorderCfg := config.ReorderConfig{Atomic: true, MaxSiblings: 1000}
	hierarchyService := hierarchy.NewService(logger, collections, groups, items, owners, auditRepo, txm, reorderCfg)
	reorderService := reorder.NewService(logger, hierarchyService, reorderCfg)
	transferService := transfer.NewService(logger, collections, groups, items, auditRepo, txm, config.TransferConfig{
		MaxDocumentBytes: 1 << 20,
		MaxEntities:      10000,
	})
	shareService := share.NewService(logger, tokens, owners, collections, groups, items, auditRepo, txm, config.ShareConfig{
		PublicBaseURL: "https://bookmarks.test",
		TokenBytes:    32,
		MaxExpiresIn:  24 * time.Hour,
		CacheTTL:      time.Minute,
	}).WithCache(sharecache.New(rdb, time.Minute))

	// 6. Router with the production middleware chain.
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "test-version"),
		Hierarchy: rest.NewHierarchyHandler(hierarchyService, logger),
		Reorder:   rest.NewReorderHandler(reorderService, logger),
		Transfer:  rest.NewTransferHandler(transferService, 1<<20, logger),
		Share:     rest.NewShareHandler(shareService, logger),
	}, rest.RouterConfig{
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{ShareResolve: opts.shareResolveLimit, Window: time.Minute},
		Validator: jwtMgr,
		Limiter:   limiter,
	}, logger)

	// 7. httptest server.
	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Redis:  mr,
		jwt:    jwtMgr,
	}
}

// newUser returns a fresh owner id with a valid access token. Owners have
// no row of their own: they exist through what they own.
func (ts *testServer) newUser(t *testing.T) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return tok, userID
}

// do sends a JSON request and returns the status and raw body. A nil body
// sends none; a string body is sent verbatim.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do with the body decoded into a map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body, token)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

// doList is do with the body decoded into a slice of objects.
func (ts *testServer) doList(t *testing.T, method, path string, token string) (int, []map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, nil, token)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return status, out
}

// ---------------------------------------------------------------------------
// Fixtures.
// ---------------------------------------------------------------------------

func (ts *testServer) createCollection(t *testing.T, token, name string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/collections", map[string]any{"name": name}, token)
	require.Equal(t, http.StatusCreated, status, "create collection: %v", body)
	return body["id"].(string)
}

func (ts *testServer) createGroup(t *testing.T, token, collectionID, name string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/groups",
		map[string]any{"collection_id": collectionID, "name": name}, token)
	require.Equal(t, http.StatusCreated, status, "create group: %v", body)
	return body["id"].(string)
}

func (ts *testServer) createItem(t *testing.T, token, groupID, title, url string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/items",
		map[string]any{"group_id": groupID, "title": title, "url": url}, token)
	require.Equal(t, http.StatusCreated, status, "create item: %v", body)
	return body["id"].(string)
}

// ids extracts the id field of each object, in order.
func ids(list []map[string]any) []string {
	out := make([]string, len(list))
	for i, m := range list {
		out[i], _ = m["id"].(string)
	}
	return out
}

// siblingIDs extracts the sibling ids of a reorder response, in order.
func siblingIDs(t *testing.T, body map[string]any) []string {
	t.Helper()

	raw, ok := body["siblings"].([]any)
	require.True(t, ok, "expected siblings in %v", body)
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = s.(map[string]any)["id"].(string)
	}
	return out
}
