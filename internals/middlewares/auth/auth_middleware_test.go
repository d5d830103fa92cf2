// internals/middlewares/auth/auth_middleware_test.go
package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/configs"
	authService "tahfidz_backend/internals/features/users/auth/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func withTestSecret(t *testing.T) {
	t.Helper()
	old := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = old })
}

func TestAuthMiddlewareResolvesSubjectToUserID(t *testing.T) {
	withTestSecret(t)
	app := newGuardedApp()

	user := &userModel.UserModel{UserID: uuid.New(), UserName: "أحمد", UserRole: "student"}
	token, err := authService.GenerateToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsTokenWithBadSubject(t *testing.T) {
	withTestSecret(t)
	app := newGuardedApp()

	// token valid secara kriptografi tapi sub bukan UUID
	claims := jwt.MapClaims{
		"sub": "bukan-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	withTestSecret(t)
	app := newGuardedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
