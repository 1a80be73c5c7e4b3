package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoepos/internal/cart"
	"shoepos/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPOSSession_CreatesWhenHeaderMissing(t *testing.T) {
	registry := cart.NewRegistry()
	e := echo.New()

	var seen *cart.Session
	e.GET("/cart", func(c echo.Context) error {
		s, ok := SessionFrom(c)
		require.True(t, ok)
		seen = s

		id, ok := common.GetSessionIDFromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, s.ID, id)
		return c.NoContent(http.StatusOK)
	}, POSSession(registry, zap.NewNop()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.NotNil(t, seen)
	assert.Equal(t, seen.ID.String(), rec.Header().Get(SessionHeader))
	assert.Equal(t, 1, registry.Len())
}

func TestPOSSession_ReusesKnownSession(t *testing.T) {
	registry := cart.NewRegistry()
	existing := registry.Create()
	e := echo.New()

	e.GET("/cart", func(c echo.Context) error {
		s, _ := SessionFrom(c)
		assert.Same(t, existing, s)
		return c.NoContent(http.StatusOK)
	}, POSSession(registry, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(SessionHeader, existing.ID.String())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, existing.ID.String(), rec.Header().Get(SessionHeader))
	assert.Equal(t, 1, registry.Len())
}

func TestPOSSession_UnknownOrMalformedIDStartsNewSession(t *testing.T) {
	registry := cart.NewRegistry()
	e := echo.New()
	e.GET("/cart", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, POSSession(registry, zap.NewNop()))

	for _, header := range []string{"not-a-uuid", uuid.NewString()} {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(SessionHeader, header)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEqual(t, header, rec.Header().Get(SessionHeader))
		_, err := uuid.Parse(rec.Header().Get(SessionHeader))
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, registry.Len())
}

func TestOperatorJWT(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	e.GET("/checkout", func(c echo.Context) error {
		id, ok := common.GetEmployeeIDFromContext(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "none")
		}
		return c.JSON(http.StatusOK, id)
	}, OperatorJWT(secret))

	t.Run("valid token sets employee id", func(t *testing.T) {
		token, err := IssueOperatorToken(secret, OperatorClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			EmployeeID:       7,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7\n", rec.Body.String())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := IssueOperatorToken("other", OperatorClaims{EmployeeID: 7})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestVersionMiddleware(t *testing.T) {
	vm := NewVersionMiddleware()
	sunset := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	vm.AddVersion("v0", "deprecated", "Legacy register API", &sunset)

	e := echo.New()
	e.Use(vm.APIVersionResolver())
	vm.VersionRoute(e, "v1").GET("/ping", func(c echo.Context) error {
		assert.Equal(t, "v1", c.Get("api_version"))
		return c.NoContent(http.StatusOK)
	})
	e.GET("/v9/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
	assert.Empty(t, rec.Header().Get("X-API-Deprecated"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v9/ping", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_VERSION")

	assert.Equal(t, []string{"v0", "v1"}, vm.SupportedVersions())
}

func TestVersionHeader_Deprecated(t *testing.T) {
	vm := NewVersionMiddleware()
	sunset := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	vm.AddVersion("v0", "deprecated", "Legacy register API", &sunset)

	e := echo.New()
	vm.VersionRoute(e, "v0").GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/ping", nil))

	assert.Equal(t, "true", rec.Header().Get("X-API-Deprecated"))
	assert.Contains(t, rec.Header().Get("Warning"), "2027-01-31")
}

func TestExtractVersionFromPath(t *testing.T) {
	assert.Equal(t, "v1", extractVersionFromPath("/v1/pos/cart"))
	assert.Equal(t, "v12", extractVersionFromPath("/v12"))
	assert.Equal(t, "", extractVersionFromPath("/health"))
	assert.Equal(t, "", extractVersionFromPath("/videos"))
	assert.Equal(t, "", extractVersionFromPath("/v0x/a"))
}
