package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

const (
	ContextUserID     = "userID"
	ContextAdminEmail = "adminEmail"
	ContextRole       = "role"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequireAuth verifies the bearer token and enforces the given role. Both
// admin and user tokens travel in the Authorization header.
func RequireAuth(cfg *config.Config, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Not authorized. Login again.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "Not authorized. Login again.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "Session expired. Please login again.")
				return
			}
			abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}
		if !token.Valid {
			abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		tokenRole, _ := claims["role"].(string)
		if tokenRole != role {
			abort(c, http.StatusForbidden, "Access denied.")
			return
		}

		switch role {
		case RoleAdmin:
			email, ok := claims["sub"].(string)
			if !ok || email == "" {
				abort(c, http.StatusUnauthorized, "Invalid token.")
				return
			}
			c.Set(ContextAdminEmail, email)

		case RoleUser:
			sub, ok := claims["sub"].(float64)
			if !ok {
				abort(c, http.StatusUnauthorized, "Invalid token.")
				return
			}
			c.Set(ContextUserID, uint(sub))
		}

		c.Set(ContextRole, tokenRole)
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
