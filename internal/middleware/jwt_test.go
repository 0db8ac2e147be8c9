package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/organiser", JWTAuth(testSecret), RequireRole(roles...))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestJWTAuth_MissingTokenIs401(t *testing.T) {
	e := protectedEcho("ORGANISER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organiser/ping", nil)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageTokenIs401(t *testing.T) {
	e := protectedEcho("ORGANISER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organiser/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenPasses(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "ORGANISER", 5)
	require.NoError(t, err)

	e := protectedEcho("ORGANISER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organiser/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRequireRole_WrongRoleIs403(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "ATTENDEE", 5)
	require.NoError(t, err)

	e := protectedEcho("ORGANISER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organiser/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth_WrongSecretIs401(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "ORGANISER", 5)
	require.NoError(t, err)

	e := protectedEcho("ORGANISER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organiser/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
