package middleware

import (
	"errors"
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Protected accepts an access token from the access_token cookie or a Bearer header
// and stores the caller as accountId/email/role locals.
func Protected(tokens *helper.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no token"))
		}

		claim, err := tokens.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}

		c.Locals("accountId", claim.AccountId)
		c.Locals("email", claim.Email)
		c.Locals("role", claim.Role)
		return c.Next()
	}
}

func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if !utils.IsValidValueOfConstant(role, roles) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, nil)
		}
		return c.Next()
	}
}
