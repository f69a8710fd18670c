package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/utils"
)

// DB is injected by main before the router starts.
var DB *gorm.DB

const UserClaimsKey = "user_claims"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserClaimsKey, claims)
		c.Next()
	}
}

// RequireRole gates a route group on the role claim. Runs after
// AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access forbidden for this role"})
			return
		}
		c.Next()
	}
}

// GetClaims returns the authenticated caller's claims, nil when the
// request never passed AuthMiddleware.
func GetClaims(c *gin.Context) *utils.Claims {
	v, _ := c.Get(UserClaimsKey)
	if v == nil {
		return nil
	}
	return v.(*utils.Claims)
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
