package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "turfacademy/database/repository/user"
	"turfacademy/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  0,
	})
}

// JWTAuthUserMiddleware accepts a bearer JWT only while its hash is the one
// recorded at the user's last login. The Redis cache is checked first and
// Mongo on a miss.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, cache utils.AuthSessionCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}
		computedHash := utils.HashToken(tokenString)

		if cache != nil {
			session, err := cache.Get(ctx, userID)
			switch {
			case err == nil && session.TokenHash == computedHash:
				c.Set(utils.ContextUserID, userID)
				c.Set(utils.ContextMobile, session.Mobile)
				c.Next()
				return
			case err == nil:
				unauthorized(c, "Token mismatch")
				return
			case err != redis.Nil:
				logger.Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: Query the database.
		usr, err := repo.GetByID(ctx, userID)
		if err != nil || usr == nil {
			unauthorized(c, "Authentication error")
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		if cache != nil {
			session := utils.AuthSession{UserID: usr.ID, Mobile: usr.Mobile, TokenHash: computedHash, CreatedAt: usr.LastLoginAt}
			if err := cache.Save(ctx, session, ttl); err != nil {
				logger.Warn("Failed to refill auth cache", zap.String("userID", userID), zap.Error(err))
			}
		}

		c.Set(utils.ContextUserID, userID)
		c.Set(utils.ContextMobile, usr.Mobile)
		c.Next()
	}
}
