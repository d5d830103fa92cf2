package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
)

// Caller adalah identitas eksplisit pemanggil yang sudah terverifikasi.
// Controller menerima nilai ini, bukan membaca context global, supaya
// logika inti bisa diuji tanpa framework.
type Caller struct {
	ID   uuid.UUID
	Name string
	Role string
}

func (cl Caller) IsTeacher() bool { return cl.Role == constants.RoleTeacher }
func (cl Caller) IsStudent() bool { return cl.Role == constants.RoleStudent }

// GetUserIDFromToken membaca user_id dari c.Locals("user_id").
// 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "غير مصرح - يرجى تسجيل الدخول")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "غير مصرح - يرجى تسجيل الدخول")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "غير مصرح - يرجى تسجيل الدخول")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "معرّف المستخدم غير صالح")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "معرّف المستخدم غير صالح")
	}
}

// GetCaller merangkai identitas caller dari Locals yang diisi auth middleware.
func GetCaller(c *fiber.Ctx) (Caller, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return Caller{}, err
	}
	role, _ := c.Locals("userRole").(string)
	name, _ := c.Locals("user_name").(string)
	return Caller{ID: id, Name: name, Role: role}, nil
}

// RequireRole mengembalikan caller hanya bila role cocok.
// 401 tanpa sesi, 403 role salah — dibedakan dari 404 milik ownership check.
func RequireRole(c *fiber.Ctx, role string) (Caller, error) {
	caller, err := GetCaller(c)
	if err != nil {
		return Caller{}, err
	}
	if caller.Role != role {
		return Caller{}, fiber.NewError(fiber.StatusForbidden, "غير مصرح - صلاحيات غير كافية")
	}
	return caller, nil
}
