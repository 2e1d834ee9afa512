package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-desk/internal/api/http/handlers"
	"github.com/spec-kit/partner-desk/internal/auth"
	"github.com/spec-kit/partner-desk/internal/config"
	"github.com/spec-kit/partner-desk/internal/observability"
	"github.com/spec-kit/partner-desk/internal/repository"
	"github.com/spec-kit/partner-desk/internal/service"
	"github.com/spec-kit/partner-desk/internal/store"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type testOptions struct {
	authEnabled bool
	limiter     fiber.Handler
}

func newTestApp(t *testing.T, opts testOptions) *fiber.App {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	st := store.New(store.WithClock(clock))
	metrics := observability.NewMetrics()

	users := repository.NewMemoryUserRepository()
	tokens := auth.NewTokenManager("test-secret", 30)
	authService := service.NewAuthService(config.AuthConfig{BcryptCost: 4}, users, tokens)

	cfg := RouteConfig{
		Health:       handlers.NewHealthHandler("partner-desk", "test", nil, nil),
		Users:        handlers.NewUsersHandler(authService),
		Partners:     handlers.NewPartnersHandler(st, clock),
		Interactions: handlers.NewInteractionsHandler(st, clock),
		Threads:      handlers.NewThreadsHandler(st),
		Dashboard:    handlers.NewDashboardHandler(st, clock),
		Metrics:      metrics.Handler(),
		WriteLimiter: opts.limiter,
	}
	if opts.authEnabled {
		cfg.AuthMiddleware = auth.NewAuthMiddleware(tokens, users)
	}

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	RegisterRoutes(app, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return d
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func createPartner(t *testing.T, app *fiber.App, name, health string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/partners", map[string]any{
		"name": name, "tier": "gold", "health": health, "revenue": 1200,
	}, "")
	require.Equal(t, http.StatusCreated, status)
	return data(t, body)["id"].(string)
}

func TestPartnerEndpoints(t *testing.T) {
	app := newTestApp(t, testOptions{})

	acme := createPartner(t, app, "Acme", "healthy")
	createPartner(t, app, "bolt", "critical")

	status, body := doJSON(t, app, http.MethodGet, "/api/partners?sort=name", nil, "")
	require.Equal(t, http.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].(map[string]any)["name"])

	status, body = doJSON(t, app, http.MethodGet, "/api/partners?health=critical", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/partners?sort=bogus", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _ = doJSON(t, app, http.MethodPatch, "/api/partners/"+acme+"/health", map[string]any{"health": "attention", "reason": "Missed QBR"}, "")
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/partners/"+acme, nil, "")
	require.Equal(t, http.StatusOK, status)
	profile := data(t, body)
	assert.Equal(t, "declining", profile["trend"])
	assert.Len(t, profile["health_history"].([]any), 2)

	status, body = doJSON(t, app, http.MethodGet, "/api/partners/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestCreatePartnerValidation(t *testing.T) {
	app := newTestApp(t, testOptions{})

	status, body := doJSON(t, app, http.MethodPost, "/api/partners", map[string]any{"name": "  ", "tier": "diamond"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "tier")
}

func TestContactEndpoint(t *testing.T) {
	app := newTestApp(t, testOptions{})
	acme := createPartner(t, app, "Acme", "healthy")

	status, _ := doJSON(t, app, http.MethodPost, "/api/partners/"+acme+"/contacts", map[string]any{
		"first_name": "Grace", "last_name": "Hopper", "role": "technical", "is_primary": true,
	}, "")
	require.Equal(t, http.StatusCreated, status)

	_, body := doJSON(t, app, http.MethodGet, "/api/partners/"+acme, nil, "")
	primary := data(t, body)["primary_contact"].(map[string]any)
	assert.Equal(t, "Grace", primary["first_name"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/partners/missing/contacts", map[string]any{
		"first_name": "Grace", "last_name": "Hopper",
	}, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInteractionEndpoints(t *testing.T) {
	app := newTestApp(t, testOptions{})
	acme := createPartner(t, app, "Acme", "healthy")

	status, body := doJSON(t, app, http.MethodPost, "/api/interactions", map[string]any{
		"partner_id": acme, "channel": "call", "interaction_type": "pricing", "summary": "ok",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"].(map[string]any)["details"], "summary")

	status, _ = doJSON(t, app, http.MethodPost, "/api/interactions", map[string]any{
		"partner_id": "missing", "channel": "call", "interaction_type": "pricing", "summary": "Pricing review",
	}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/interactions", map[string]any{
		"partner_id": acme, "channel": "support", "interaction_type": "support_ticket", "summary": "  Login issue  ",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	assert.Equal(t, "indirect", created["type"])
	assert.Equal(t, "Login issue", created["summary"])
	assert.Equal(t, "Acme", created["partner_name"])

	status, body = doJSON(t, app, http.MethodGet, "/api/interactions?type=direct", nil, "")
	require.Equal(t, http.StatusOK, status)
	feed := data(t, body)
	counts := feed["counts"].(map[string]any)
	assert.EqualValues(t, 1, counts["all"])
	assert.EqualValues(t, 1, counts["indirect"])
	assert.Empty(t, feed["days"])
}

func TestThreadEndpoints(t *testing.T) {
	app := newTestApp(t, testOptions{})
	acme := createPartner(t, app, "Acme", "healthy")

	status, body := doJSON(t, app, http.MethodPost, "/api/threads", map[string]any{
		"partner_id": acme, "title": "Renewal terms", "visibility": "action_required", "priority": "high",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	thread := data(t, body)
	assert.Equal(t, "open", thread["status"])
	assert.Equal(t, "Thread created", thread["last_activity"])

	_, body = doJSON(t, app, http.MethodGet, "/api/partners/"+acme, nil, "")
	assert.EqualValues(t, 1, data(t, body)["partner"].(map[string]any)["open_threads"])

	status, body = doJSON(t, app, http.MethodGet, "/api/threads", nil, "")
	require.Equal(t, http.StatusOK, status)
	board := data(t, body)
	assert.Len(t, board["action_required"].([]any), 1)
	assert.EqualValues(t, 1, board["counts"].(map[string]any)["action_required"])

	status, _ = doJSON(t, app, http.MethodPatch, "/api/threads/"+thread["id"].(string)+"/status", map[string]any{"status": "resolved"}, "")
	require.Equal(t, http.StatusOK, status)

	_, body = doJSON(t, app, http.MethodGet, "/api/partners/"+acme, nil, "")
	assert.EqualValues(t, 0, data(t, body)["partner"].(map[string]any)["open_threads"])

	status, _ = doJSON(t, app, http.MethodPatch, "/api/threads/missing/status", map[string]any{"status": "resolved"}, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t, testOptions{})
	acme := createPartner(t, app, "Acme", "healthy")
	createPartner(t, app, "Bolt", "neutral")
	doJSON(t, app, http.MethodPost, "/api/threads", map[string]any{"partner_id": acme, "title": "QBR"}, "")

	status, body := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, "")
	require.Equal(t, http.StatusOK, status)
	dashboard := data(t, body)

	metrics := dashboard["metrics"].(map[string]any)
	assert.EqualValues(t, 2, metrics["active_partners"])
	assert.EqualValues(t, 1, metrics["open_threads"])

	ring := dashboard["health_ring"].(map[string]any)
	assert.EqualValues(t, 1, ring["total"])
	assert.EqualValues(t, 1, ring["neutral"])
	assert.Len(t, dashboard["recent_threads"].([]any), 1)
}

func TestWriteRateLimiter(t *testing.T) {
	app := newTestApp(t, testOptions{limiter: WriteRateLimiter(0.001, 1)})

	createPartner(t, app, "Acme", "healthy")
	status, body := doJSON(t, app, http.MethodPost, "/api/partners", map[string]any{"name": "Bolt"}, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", errorCode(body))

	status, _ = doJSON(t, app, http.MethodGet, "/api/partners", nil, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthenticatedAPI(t *testing.T) {
	app := newTestApp(t, testOptions{authEnabled: true})

	status, body := doJSON(t, app, http.MethodGet, "/api/partners", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, body = doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "long-enough",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "long-enough",
	}, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{"email": "ada@example.com", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{"email": "ada@example.com", "password": "long-enough"}, "")
	require.Equal(t, http.StatusOK, status)
	token := data(t, body)["auth"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada@example.com", data(t, body)["email"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/partners", nil, token)
	assert.Equal(t, http.StatusOK, status)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, testOptions{})

	status, body := doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	require.Equal(t, http.StatusOK, status)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "disabled", deps["postgres"])
	assert.Equal(t, "disabled", deps["redis"])

	status, body = doJSON(t, app, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "partner_desk_http_requests_total")
}
