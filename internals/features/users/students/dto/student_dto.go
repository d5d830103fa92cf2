package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
	userModel "tahfidz_backend/internals/features/users/user/model"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,19}$`)

type CreateStudentRequest struct {
	Name     string  `json:"name" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		if p == "" {
			r.Phone = nil
		} else {
			r.Phone = &p
		}
	}
}

// Validate mengembalikan *fiber.Error berpesan Arab, cocok untuk FromFiberError.
func (r *CreateStudentRequest) Validate() error {
	if len([]rune(r.Name)) < constants.MinNameLength {
		return fiber.NewError(fiber.StatusBadRequest, "الاسم يجب أن يكون حرفين على الأقل")
	}
	if len(r.Password) < constants.MinPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "كلمة المرور يجب أن تكون 6 أحرف على الأقل")
	}
	if r.Phone != nil && !phonePattern.MatchString(*r.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "رقم الهاتف غير صالح")
	}
	return nil
}

// StudentResponse tidak pernah membawa hash password.
type StudentResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserPhone *string   `json:"user_phone,omitempty"`
	CreatedAt time.Time `json:"user_created_at"`
}

func ToStudentResponse(u userModel.UserModel) StudentResponse {
	return StudentResponse{
		UserID:    u.UserID,
		UserName:  u.UserName,
		UserPhone: u.UserPhone,
		CreatedAt: u.UserCreatedAt,
	}
}
