package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/clients/redis"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/ctxutil"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/tokens"
)

type AuthMiddleware struct {
	log    *logger.Logger
	minter *tokens.Minter
	deny   redis.TokenDenylist
}

// NewAuthMiddleware accepts a nil denylist; sessions then stay valid until
// their JWT expiry even after revocation.
func NewAuthMiddleware(minter *tokens.Minter, deny redis.TokenDenylist, baseLog *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		log:    baseLog.With("middleware", "AuthMiddleware"),
		minter: minter,
		deny:   deny,
	}
}

// RequireAuth verifies the bearer token, rejects denylisted sessions, and
// attaches the caller's identity to the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		claims, err := am.minter.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		if claims.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "forbidden", "code": "forbidden"},
			})
			return
		}

		if am.deny != nil {
			denied, err := am.deny.IsDenied(c.Request.Context(), claims.SessionID)
			if err != nil {
				am.log.Warn("denylist check failed", "error", err)
			} else if denied {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{"message": "session revoked", "code": "unauthorized"},
				})
				return
			}
		}

		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:    claims.UserID,
			SessionID: claims.SessionID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
