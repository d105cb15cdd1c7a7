package middlewares

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/token"
	"github.com/fathima-sithara/account-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userLocal = "auth_user"

// Protect resolves the bearer token, loads the identity record and stashes
// it on the request. The Authorization header is accepted both with and
// without the "Bearer " scheme prefix.
func Protect(tokens *token.Manager, repo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("Authorization")
		if raw == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized to access this route")
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		userID, err := tokens.Verify(raw)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized to access this route")
		}

		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized to access this route")
		}
		user, err := repo.FindByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return utils.JSONError(c, fiber.StatusUnauthorized, "user not found")
			}
			return utils.JSONError(c, fiber.StatusInternalServerError, "internal server error")
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// Authorize rejects identities whose role is not in the allowed set. The
// role field defaults to "user"; this gate is the extension point for
// anything beyond that.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized")
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return utils.JSONError(c, fiber.StatusForbidden, fmt.Sprintf("role %s is not authorized to access this route", user.Role))
	}
}

// CurrentUser returns the identity attached by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocal).(*models.User)
	return u
}
