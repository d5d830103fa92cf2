// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "tahfidz_backend/internals/features/users/auth/dto"
	authService "tahfidz_backend/internals/features/users/auth/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// =============================
// 🔐 POST /api/auth/login
// =============================
// Kredensial salah & user tak dikenal dibalas pesan yang sama —
// tidak membocorkan nama mana yang terdaftar.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "الاسم وكلمة المرور مطلوبان")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_name = ?", req.Name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تسجيل الدخول")
	}
	if !authService.CheckPassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
	}

	token, err := authService.GenerateToken(&user)
	if err != nil {
		log.Println("[ERROR] Gagal membuat token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تسجيل الدخول")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(authService.TokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	log.Printf("[SUCCESS] Login: %s (%s)", user.UserName, user.UserRole)
	return helper.JsonOK(c, "تم تسجيل الدخول بنجاح", authDTO.LoginResponse{
		UserID:   user.UserID,
		UserName: user.UserName,
		UserRole: user.UserRole,
		Token:    token,
	})
}

// =============================
// 🚪 POST /api/auth/logout
// =============================
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return helper.JsonOK(c, "تم تسجيل الخروج بنجاح", nil)
}

// =============================
// 👤 GET /api/auth/me
// =============================
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", caller.ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المستخدم غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب بيانات المستخدم")
	}

	return helper.JsonOK(c, "OK", authDTO.MeResponse{
		UserID:   user.UserID,
		UserName: user.UserName,
		UserRole: user.UserRole,
		Phone:    user.UserPhone,
	})
}
