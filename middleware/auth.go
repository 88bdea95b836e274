package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// redis auth cache when available, and stores the user id in the request
// context under "userID".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		// A cached hash means the token is the user's current session; a
		// mismatch means it was revoked or superseded. When the cache is
		// unreachable we fall back to signature validation alone.
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, utils.AuthCachePrefix+userID).Result()
			switch {
			case err == nil:
				if cachedHash != utils.HashToken(tokenString) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, utils.AuthCachePrefix+userID, time.Hour).Err()
			case err != redis.Nil:
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to token validation only.", err)
			}
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// AuthedUserID extracts the authenticated user id set by JWTAuthMiddleware.
func AuthedUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
