package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-middleware-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        5,
	})
}

func issueAccessToken(t *testing.T, svc *auth.JWTService, isStaff bool) (string, *auth.Claims) {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  uuid.New(),
		Email:   "shopper@example.com",
		IsStaff: isStaff,
	})
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

func newJWTTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"email":    GetJWTEmail(c),
			"is_staff": GetJWTIsStaff(c),
		})
	})
	router.GET("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	token, claims := issueAccessToken(t, svc, false)

	router := newJWTTestRouter(JWTAuthMiddleware(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, claims.UserID, body["user_id"])
	assert.Equal(t, "shopper@example.com", body["email"])
	assert.Equal(t, false, body["is_staff"])
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := newJWTTestRouter(JWTAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", errorCode(t, w.Body.Bytes()))
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newJWTTestRouter(JWTAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_GarbageToken(t *testing.T) {
	router := newJWTTestRouter(JWTAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", errorCode(t, w.Body.Bytes()))
}

func TestJWTAuthMiddleware_SkipPath(t *testing.T) {
	router := newJWTTestRouter(JWTAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/auth/login", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_SkipPathPrefix(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	cfg.SkipPathPrefixes = []string{"/protected"}
	router := newJWTTestRouter(JWTAuthMiddlewareWithConfig(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	token, claims := issueAccessToken(t, svc, false)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := newJWTTestRouter(JWTAuthMiddlewareWithConfig(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", errorCode(t, w.Body.Bytes()))
}

func TestJWTAuthMiddleware_RevokedAllForUser(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	token, claims := issueAccessToken(t, svc, false)
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, blacklist.RevokeAllForUser(context.Background(), claims.UserID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := newJWTTestRouter(JWTAuthMiddlewareWithConfig(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", errorCode(t, w.Body.Bytes()))
}

func TestJWTAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
	})
	require.NoError(t, err)

	router := newJWTTestRouter(JWTAuthMiddleware(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	token, claims := issueAccessToken(t, svc, true)

	router := newJWTTestRouter(OptionalJWTAuthMiddleware(svc))

	t.Run("no token passes through anonymously", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "", body["user_id"])
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid token populates claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, claims.UserID, body["user_id"])
		assert.Equal(t, true, body["is_staff"])
	})
}

func TestStaffOnly(t *testing.T) {
	svc := newTestJWTService()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc))
	router.GET("/admin", StaffOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-staff user", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ERR_FORBIDDEN", errorCode(t, w.Body.Bytes()))
	})

	t.Run("staff user", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMustGetJWTClaims_PanicsWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	assert.Panics(t, func() { MustGetJWTClaims(c) })
}
