package middleware

import (
	"encoding/json"
	"filevault-backend/config"
	"filevault-backend/internal/auth"
	"filevault-backend/internal/database"
	"filevault-backend/internal/repository"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.BlockedTokenRepository) {
	t.Helper()

	config.Set(&config.Config{
		Auth: config.AuthConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		},
	})

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	blockRepo := repository.NewBlockedTokenRepository(db)

	app := fiber.New()
	app.Get("/protected", Protected(blockRepo), func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*auth.Claims)
		return c.JSON(fiber.Map{"userId": claims.UserID})
	})

	return app, blockRepo
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProtected_NoToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
	assert.Nil(t, body["data"])
}

func TestProtected_InvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, "not.a.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_ValidToken(t *testing.T) {
	app, _ := newTestApp(t)

	token, err := auth.GenerateAccessToken("user-1", "device-1", "u@example.com", config.Get())
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body["userId"])
}

func TestProtected_RevokedToken(t *testing.T) {
	app, blockRepo := newTestApp(t)

	token, err := auth.GenerateAccessToken("user-1", "device-1", "u@example.com", config.Get())
	require.NoError(t, err)

	require.NoError(t, blockRepo.BlockToken("user-1", "device-1", token))

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Revocation is token-value-specific: a token issued after the logout
	// for the same device passes.
	newToken, err := auth.GenerateAccessToken("user-1", "device-1", "u@example.com", config.Get())
	require.NoError(t, err)

	resp = request(t, app, newToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtected_TokenForOtherDeviceUnaffected(t *testing.T) {
	app, blockRepo := newTestApp(t)

	blockedToken, err := auth.GenerateAccessToken("user-1", "device-1", "u@example.com", config.Get())
	require.NoError(t, err)
	otherDevice, err := auth.GenerateAccessToken("user-1", "device-2", "u@example.com", config.Get())
	require.NoError(t, err)

	require.NoError(t, blockRepo.BlockToken("user-1", "device-1", blockedToken))

	resp := request(t, app, otherDevice)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
