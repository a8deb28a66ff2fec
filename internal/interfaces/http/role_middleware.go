package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
)

// RequireRole lets the request through only when the token role is one of roles.
// Must run after AuthMiddleware.
//
//   - 401 MISSING_ROLE when the token carries no role.
//   - 403 FORBIDDEN when the role is not allowed.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token has no role"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role '" + role + "' cannot perform this action"})
		}
		return c.Next()
	}
}
