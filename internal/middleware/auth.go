package middleware

import (
	"filevault-backend/config"
	"filevault-backend/internal/auth"
	"filevault-backend/internal/repository"
	"filevault-backend/internal/response"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Protected gates a route behind the session revocation guard: the bearer
// token must verify against the access secret and must not be the token that
// was blocked for its (user, device) pair. Signup, signin and new_token routes
// are simply registered without this middleware.
func Protected(blockRepo *repository.BlockedTokenRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, "no token provided", fiber.StatusForbidden)
		}

		// Handle both cases: with and without "Bearer " prefix
		token := authHeader
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			token = authHeader[7:]
		}

		claims, err := auth.ValidateAccessToken(token, config.Get())
		if err != nil {
			return response.Error(c, "invalid or expired token", fiber.StatusUnauthorized)
		}

		blocked, err := blockRepo.IsBlocked(claims.UserID, claims.DeviceID, token)
		if err != nil {
			log.Error().Err(err).Msg("Blocklist lookup failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
		if blocked {
			return response.Error(c, "token has been revoked", fiber.StatusUnauthorized)
		}

		// Add claims to context for use in protected routes
		c.Locals("user", claims)
		return c.Next()
	}
}
