package middleware

import (
	"strings"

	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		if _, err := userRepo.FindByID(claims.UserID); err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)

		return c.Next()
	}
}

// RequireAdmin gates a route on the admin role. The profile table is the
// source of truth, not the token claim, so a role toggle takes effect without
// a re-login.
func RequireAdmin(profileRepo repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid user identity"})
		}

		profile, err := profileRepo.FindByID(userID)
		if err != nil || !profile.IsAdmin() {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin role"})
		}

		return c.Next()
	}
}
