package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"broadcast_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthAPI_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.CreateUser(t, "user@test.com", "password123", false)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "user@test.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "not-an-email", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	token := ts.Login(t, "user@test.com", "password123")
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "user@test.com")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminAPI_UsersAndCatalog(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.CreateUser(t, "admin@test.com", "password123", true)
	adminToken := ts.Login(t, "admin@test.com", "password123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]interface{}{"name": "Maths"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"path"`)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/users", adminToken, map[string]interface{}{
		"email": "teacher@test.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/users", adminToken, map[string]interface{}{
		"email": "teacher@test.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/role-assignments", adminToken, map[string]interface{}{
		"user_id": 2, "context_id": ts.Site.ID, "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestSystemRoutes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ok")

	res, body = ts.SendRequest(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.Contains(body, "broadcast_http_requests_total"), "счетчик HTTP запросов экспортируется")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}
