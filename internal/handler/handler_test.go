package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/greencart-dev/greencart/backend/internal/config"
	"github.com/greencart-dev/greencart/backend/internal/domain"
	"github.com/greencart-dev/greencart/backend/internal/metrics"
	"github.com/greencart-dev/greencart/backend/internal/repository"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.Simulation.HistoryLimit = 10

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil, metrics.New())
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, mock
}

func authCookie(t *testing.T, h *Handler, role domain.Role) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   "1",
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	require.NoError(t, err)

	return &http.Cookie{Name: "__greencart_token", Value: ss}
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func doRequest(h *Handler, req *http.Request) (*httptest.ResponseRecorder, Response) {
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

func TestAuthRequiresCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/drivers/", nil)
	rec, resp := doRequest(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "not logged in", resp.Message)
}

func TestAuthRejectsForgedToken(t *testing.T) {
	h, _ := newTestHandler(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(domain.RoleManager),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   "1",
		},
	})
	ss, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/drivers/", nil)
	req.AddCookie(&http.Cookie{Name: "__greencart_token", Value: ss})
	_, resp := doRequest(h, req)

	assert.False(t, resp.Success)
	assert.Equal(t, "invalid token", resp.Message)
}

func TestViewerCannotMutate(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{"/drivers/", "/routes/", "/orders/", "/simulations/", "/users/"} {
		req := httptest.NewRequest("POST", path, strings.NewReader("{}"))
		req.AddCookie(authCookie(t, h, domain.RoleViewer))
		_, resp := doRequest(h, req)

		assert.False(t, resp.Success, "path %s", path)
		assert.Equal(t, "permission denied", resp.Message, "path %s", path)
	}
}

func TestDriverNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("FROM drivers").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/drivers/42/", nil)
	req.AddCookie(authCookie(t, h, domain.RoleViewer))
	rec, resp := doRequest(h, req)

	// client faults come back as a failed envelope, not an HTTP error
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "driver not found", resp.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newTestHandler(t)

	hash := bcryptHash(t, "right-password")
	rows := sqlmock.NewRows([]string{"id", "password_hash", "role", "created_at", "version"}).
		AddRow(1, hash, "manager", time.Now(), 1)
	mock.ExpectQuery("FROM users").
		WithArgs("ops@greencart.local").
		WillReturnRows(rows)

	body := `{"email": "ops@greencart.local", "password": "wrong-password"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	_, resp := doRequest(h, req)

	assert.False(t, resp.Success)
	assert.Equal(t, "unknown email or wrong password", resp.Message)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, mock := newTestHandler(t)

	hash := bcryptHash(t, "right-password")
	rows := sqlmock.NewRows([]string{"id", "password_hash", "role", "created_at", "version"}).
		AddRow(1, hash, "manager", time.Now(), 1)
	mock.ExpectQuery("FROM users").
		WithArgs("ops@greencart.local").
		WillReturnRows(rows)

	body := `{"email": "ops@greencart.local", "password": "right-password"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	rec, resp := doRequest(h, req)

	require.True(t, resp.Success)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "__greencart_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "1", claims.Subject)
}

func TestValidationErrorIsTranslated(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"email": "not-an-email", "password": "whatever"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	_, resp := doRequest(h, req)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "email")
}
