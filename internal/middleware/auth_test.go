package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vishvpatel010/ai-quizzer/config"
)

func newAuthRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(cfg))
	r.POST("/protected", func(ctx *gin.Context) {
		userID, ok := UserID(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authorization token is required")
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})
	token := signToken(t, "other-secret", jwt.MapClaims{"userId": 7, "exp": time.Now().Add(time.Hour).Unix()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})
	token := signToken(t, "secret", jwt.MapClaims{"userId": 7, "exp": time.Now().Add(-time.Hour).Unix()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})
	token := signToken(t, "secret", jwt.MapClaims{"userId": 7, "exp": time.Now().Add(time.Hour).Unix()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthAcceptsBareToken(t *testing.T) {
	// A raw token without the "Bearer" scheme is accepted too.
	r := newAuthRouter(t, &config.Config{JWTSecret: "secret"})
	token := signToken(t, "secret", jwt.MapClaims{"userId": 7, "exp": time.Now().Add(time.Hour).Unix()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
