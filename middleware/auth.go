package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"bloodlink/models"
	"bloodlink/services/auth"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// BearerAuthMiddleware validates the access token on protected routes.
// The codec verifies the signature and window; the ledger confirms the
// token was issued here and is neither revoked nor expired. Validated
// tokens are cached in Redis by hash so the happy path skips the ledger;
// cache trouble degrades to the ledger lookup.
func BearerAuthMiddleware(codec *auth.Codec, tokens auth.TokenService, resolver auth.PrincipalResolver, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		result := codec.Verify(tokenString)
		switch result.Status {
		case auth.StatusValid:
		case auth.StatusExpired:
			// Explicit caller-side step: annotate the ledger row. A miss
			// is fine, the annotation is best-effort.
			if err := tokens.MarkExpired(tokenString); err != nil {
				log.Printf("WARNING: failed to mark token expired: %v", err)
			}
			abortUnauthenticated(c)
			return
		default:
			abortUnauthenticated(c)
			return
		}

		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)
		cacheEnabled := authCache != nil

		if cacheEnabled {
			role, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set("principalID", result.Subject)
				c.Set("role", models.Role(role))
				c.Set("accessToken", tokenString)
				c.Next()
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: error reading auth cache: %v. Falling back to ledger lookup.", err)
			}
		}

		stored, err := tokens.FindByToken(tokenString)
		if err != nil || stored == nil || stored.Revoked || stored.Expired {
			abortUnauthenticated(c)
			return
		}

		principal, err := resolver.ResolveByID(result.Subject)
		if err != nil || principal == nil {
			abortUnauthenticated(c)
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, string(principal.Role), utils.AuthCacheTTL).Err()
		}

		c.Set("principalID", result.Subject)
		c.Set("role", principal.Role)
		c.Set("accessToken", tokenString)
		c.Next()
	}
}

// abortUnauthenticated keeps the message generic regardless of whether
// the token was missing, malformed, expired or revoked.
func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "Authentication failed",
	})
}
