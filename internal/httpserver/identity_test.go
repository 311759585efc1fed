package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func requestWithCookie(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireLogin(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireLogin(testSecret)

	c, _ := requestWithCookie(signToken(t, 5, "user"))
	require.NoError(t, mw(next)(c))
	id, err := identityOf(c)
	require.NoError(t, err)
	require.Equal(t, uint(5), id.UserID)
	require.False(t, id.IsAdmin)

	c, _ = requestWithCookie("")
	err = mw(next)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	c, _ = requestWithCookie("not-a-token")
	err = mw(next)(c)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAdminOnly(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := AdminOnly(testSecret)

	c, _ := requestWithCookie(signToken(t, 9, "admin"))
	require.NoError(t, mw(next)(c))
	id, err := identityOf(c)
	require.NoError(t, err)
	require.True(t, id.IsAdmin)

	c, _ = requestWithCookie(signToken(t, 5, "user"))
	err = mw(next)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, he.Code)
}
