package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/what2eat/what2eat-api/internal/models"
)

// JWTAuth validates a Bearer JWT and stores its identity claims in the
// context. Dish routes are public by default; this middleware is only
// registered when auth is enabled in the configuration. Failures surface
// as domain errors so the global error handler maps them to 401.
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must use Bearer scheme")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := parseJWTToken(tokenString, jwtSecret)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("userID", sub)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set("userRole", role)
		}
		c.Next()
	}
}

// RequireRole checks that JWTAuth stored the required role in the context
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			abortUnauthorized(c, "User not authenticated")
			return
		}
		if role != requiredRole {
			c.Error(models.NewForbiddenError("Insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// parseJWTToken validates and parses a JWT token using HMAC signing.
// The signing method check prevents algorithm confusion attacks.
func parseJWTToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Error(models.NewUnauthorizedError(message))
	c.Abort()
}
