package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/config"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
)

// UserIDKey is the gin context key under which the authenticated owner's ID
// is stored.
const UserIDKey = "userID"

// Auth resolves the bearer token into an authenticated user ID and injects
// it into the request context. A bare token without the "Bearer" scheme is
// also accepted.
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization token is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		tokenString := parts[len(parts)-1]

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("Auth: token verification failed")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Invalid token"})
			return
		}
		userID, ok := claims["userId"].(float64)
		if !ok || userID <= 0 {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Invalid token"})
			return
		}

		ctx.Set(UserIDKey, uint(userID))
		ctx.Next()
	}
}

// UserID reads the authenticated owner's ID placed by Auth. The second
// return is false if the middleware did not run.
func UserID(ctx *gin.Context) (uint, bool) {
	val, exists := ctx.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
