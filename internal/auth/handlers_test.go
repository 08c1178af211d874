package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *Service) *gin.Engine {
	log := logger.Discard()
	handler := NewHandler(svc, log)
	mw := NewMiddleware(svc, log)

	router := gin.New()
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/me", mw.RequireAuth(), handler.Me)
	return router
}

func doJSON(router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSignupHandler(t *testing.T) {
	svc, mock := newTestService(t)
	router := newTestRouter(svc)

	mock.ExpectQuery("name: GetUserByEmail").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery("name: CreateUser").
		WillReturnRows(userRow(1, "Ada", "ada@example.com", "hash"))

	w := doJSON(router, http.MethodPost, "/auth/signup", SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "User created successfully.", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
}

func TestSignupHandlerErrors(t *testing.T) {
	svc, mock := newTestService(t)
	router := newTestRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/signup", SignupRequest{Email: "ada@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email, and password are required.", decode(t, w)["error"])

	w = doJSON(router, http.MethodPost, "/auth/signup", SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 6 characters long.", decode(t, w)["error"])

	mock.ExpectQuery("name: GetUserByEmail").
		WillReturnRows(userRow(1, "Ada", "ada@example.com", "hash"))
	w = doJSON(router, http.MethodPost, "/auth/signup", SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists.", decode(t, w)["error"])
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	svc, mock := newTestService(t)
	router := newTestRouter(svc)

	mock.ExpectQuery("name: GetUserByEmail").
		WillReturnRows(sqlmock.NewRows(userColumns))

	w := doJSON(router, http.MethodPost, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "secret1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", decode(t, w)["error"])
}

func TestMeHandler(t *testing.T) {
	svc, mock := newTestService(t)
	router := newTestRouter(svc)

	token, err := svc.tokens.Issue(5)
	require.NoError(t, err)

	mock.ExpectQuery("name: GetUserByID").
		WithArgs(int64(5)).
		WillReturnRows(userRow(5, "Ada", "ada@example.com", "hash"))

	w := doJSON(router, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, float64(5), user["id"])
}

func TestRequireAuthRejections(t *testing.T) {
	svc, mock := newTestService(t)
	router := newTestRouter(svc)

	w := doJSON(router, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. No token provided or invalid format.", decode(t, w)["error"])

	w = doJSON(router, http.MethodGet, "/auth/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. Invalid token.", decode(t, w)["error"])

	token, err := svc.tokens.Issue(9)
	require.NoError(t, err)
	mock.ExpectQuery("name: GetUserByID").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns))
	w = doJSON(router, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. User not found.", decode(t, w)["error"])
}
