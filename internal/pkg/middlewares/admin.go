package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/folio-stats/internal/pkg/apierr"
)

// AdminAuth requires "Authorization: Bearer <key>". An empty key disables the routes entirely.
func AdminAuth(key string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if key == "" {
			return apierr.ErrNotFound
		}

		token, ok := strings.CutPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			return apierr.ErrUnauthorized
		}

		return ctx.Next()
	}
}
