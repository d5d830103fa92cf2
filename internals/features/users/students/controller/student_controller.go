// internals/features/users/students/controller/student_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tahfidz_backend/internals/constants"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	authService "tahfidz_backend/internals/features/users/auth/service"
	studentDTO "tahfidz_backend/internals/features/users/students/dto"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
)

var validate = validator.New()

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// =============================
// 📋 GET /api/students
// =============================
// Query: ?page= & ?per_page= (default 20, max 100).
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_role = ?", constants.RoleStudent).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب بيانات الطلاب")
	}

	var students []userModel.UserModel
	if err := ctrl.DB.
		Where("user_role = ?", constants.RoleStudent).
		Order("user_created_at ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب بيانات الطلاب")
	}

	resp := make([]studentDTO.StudentResponse, 0, len(students))
	for _, u := range students {
		resp = append(resp, studentDTO.ToStudentResponse(u))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "OK", resp, &pagination)
}

// =============================
// ➕ POST /api/students
// =============================
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "اسم الطالب وكلمة المرور مطلوبان")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		log.Println("[ERROR] Gagal hash password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في إنشاء الطالب")
	}

	student := userModel.UserModel{
		UserName:     req.Name,
		UserPassword: hashed,
		UserRole:     constants.RoleStudent,
		UserPhone:    req.Phone,
	}
	if err := ctrl.DB.Create(&student).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "اسم الطالب مستخدم بالفعل")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في إنشاء الطالب")
	}

	log.Printf("[SUCCESS] Student dibuat: %s", student.UserName)
	return helper.JsonCreated(c, "تم إنشاء الطالب بنجاح", studentDTO.ToStudentResponse(student))
}

// =============================
// ❌ DELETE /api/students/:id
// =============================
// Satu transaksi: student_tasks milik siswa ikut terhapus — tidak pernah
// menyisakan row yatim saat salah satu langkah gagal.
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الطالب غير صالح")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var student userModel.UserModel
		if err := tx.
			Where("user_id = ? AND user_role = ?", studentID, constants.RoleStudent).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "الطالب غير موجود")
			}
			return err
		}
		if err := tx.
			Where("student_task_student_id = ?", studentID).
			Delete(&studentTaskModel.StudentTaskModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Println("[ERROR] Gagal hapus student:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في حذف الطالب")
	}

	return helper.JsonDeleted(c, "تم حذف الطالب بنجاح", fiber.Map{"user_id": studentID})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
