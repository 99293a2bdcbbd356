package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"broadcast_backend/internal/app"
	"broadcast_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const TestJWTSecret = "test_secret_key_for_broadcasts_12345"

// TestServer - httptest-сервер с полным роутером поверх тестовой БД
type TestServer struct {
	*TestDB
	Server *httptest.Server
	Config *config.Config
}

// TestConfig - конфиг без файлов и окружения
func TestConfig(siteContextID uint) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.Timezone = "UTC"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file::memory:"
	cfg.JWT.Secret = TestJWTSecret
	cfg.JWT.TTL = 60
	cfg.Broadcast.SiteContextID = siteContextID
	cfg.Broadcast.PollMinSeconds = 60
	cfg.Broadcast.PollMaxSeconds = 120
	cfg.Broadcast.ContextCacheTTL = 300
	cfg.Broadcast.StatsInterval = 60
	return cfg
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tdb := NewTestDB(t)
	cfg := TestConfig(tdb.Site.ID)
	router := app.SetupRouter(cfg, tdb.DB)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{TestDB: tdb, Server: server, Config: cfg}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")
	return res, string(resBody)
}

// Login логинит пользователя через API и возвращает токен
func (ts *TestServer) Login(t *testing.T, email, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+body)

	var resp struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.Token, "Токен не должен быть пустым")
	return resp.Token
}
