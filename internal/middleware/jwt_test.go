package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-booking/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return c, rec, reached
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u1", true, 15)
	require.NoError(t, err)

	c, rec, reached := runJWT(t, "Bearer "+tok.Token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", c.Get("user_id"))
	assert.Equal(t, true, c.Get("is_admin"))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	_, rec, reached := runJWT(t, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", "u1", false, 15)
	require.NoError(t, err)

	_, rec, reached := runJWT(t, "Bearer "+tok.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u1", false, -5)
	require.NoError(t, err)

	_, rec, reached := runJWT(t, "Bearer "+tok.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsNonHMACSignature(t *testing.T) {
	// A token signed with "none" must never pass, even with a valid
	// payload shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, rec, reached := runJWT(t, "Bearer "+raw)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// Admin passes.
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("is_admin", true)
	require.NoError(t, RequireAdmin()(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Non-admin blocked.
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("is_admin", false)
	require.NoError(t, RequireAdmin()(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Missing flag blocked.
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, RequireAdmin()(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
