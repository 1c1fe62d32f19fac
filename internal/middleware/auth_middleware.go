package middleware

import (
	"strings"

	"go-dealer-stock/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireDealer validates the bearer token and puts the authenticated
// dealer identity into the request context. Handlers never read ambient
// state; every core call receives the dealer explicitly.
func RequireDealer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string
		authHeader := c.Get("Authorization")
		switch {
		case authHeader != "":
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
			}
			tokenString = parts[1]
		case c.Query("token") != "":
			// Browser websocket clients cannot set headers on the
			// upgrade request.
			tokenString = c.Query("token")
		default:
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("dealer_id", claims.DealerID.String())
		c.Locals("dealer_email", claims.Email)
		c.Locals("dealer_name", claims.Name)

		return c.Next()
	}
}
