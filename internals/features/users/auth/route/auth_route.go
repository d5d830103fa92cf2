package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "tahfidz_backend/internals/features/users/auth/controller"
	"tahfidz_backend/internals/middlewares"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// AuthRoutes: login publik (dibatasi rate limiter), logout & me butuh token.
func AuthRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)
	auth := router.Group("/auth")

	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", authMiddleware.AuthMiddleware(), ctrl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
}
