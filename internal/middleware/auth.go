package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const claimsContextKey = "staff_claims"

// StaffClaims is what the upstream identity provider puts in access tokens.
// This service only validates and reads them; it issues nothing itself.
type StaffClaims struct {
	StaffID        uuid.UUID `json:"staff_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	TeamID         uuid.UUID `json:"team_id"`
	Role           string    `json:"role"`
	jwt.RegisteredClaims
}

func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(claimsContextKey, claims)
		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) *StaffClaims {
	claims, ok := c.Locals(claimsContextKey).(*StaffClaims)
	if !ok {
		return nil
	}
	return claims
}

func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return Unauthorized("Not authenticated")
		}

		if claims.Role != requiredRole {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
