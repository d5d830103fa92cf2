// internals/features/studenttasks/controller/teacher_student_task_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	studentTaskDTO "tahfidz_backend/internals/features/studenttasks/dto"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	"tahfidz_backend/internals/features/studenttasks/service"
	taskModel "tahfidz_backend/internals/features/tasks/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
)

type TeacherStudentTaskController struct {
	DB *gorm.DB
}

func NewTeacherStudentTaskController(db *gorm.DB) *TeacherStudentTaskController {
	return &TeacherStudentTaskController{DB: db}
}

// PATCH /api/student-tasks/:id
// Guru mengubah status / catatan / waktu penyerahan milik record siswa.
func (ctrl *TeacherStudentTaskController) Update(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف السجل غير صالح")
	}

	var req studentTaskDTO.TeacherUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	if req.IsEmpty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "لا توجد بيانات للتحديث")
	}
	if req.Status != nil {
		if err := service.ValidateStatus(*req.Status); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	// validasi panjang sebelum menyentuh record — catatan tersimpan tak berubah
	if req.Note != nil {
		if err := service.ValidateNote(*req.Note); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	var st studentTaskModel.StudentTaskModel
	if err := ctrl.DB.Where("student_task_id = ?", recordID).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "مهمة الطالب غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث بيانات مهمة الطالب")
	}

	// task induk harus milik guru pemanggil — bukan pemilik → 404
	var task taskModel.TaskModel
	if err := ctrl.DB.
		Where("task_id = ? AND task_teacher_id = ?", st.StudentTaskTaskID, caller.ID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "مهمة الطالب غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث بيانات مهمة الطالب")
	}

	late := false
	if req.Status != nil {
		late = service.ApplyStatusChange(&st, *req.Status, req.SubmittedAt, task.TaskDeadline, time.Now())
	} else if req.SubmittedAt != nil {
		st.StudentTaskSubmittedAt = req.SubmittedAt
	}
	if req.Note != nil {
		st.StudentTaskNote = req.Note
	}

	if err := ctrl.DB.Save(&st).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث بيانات مهمة الطالب")
	}

	if late {
		log.Printf("[WARN] تسليم متأخر: student=%s task=%s", st.StudentTaskStudentID, task.TaskTitle)
	}

	return helper.JsonUpdated(c, "تم تحديث المهمة بنجاح", studentTaskDTO.StudentTaskResponse{
		StudentTaskModel: st,
		Late:             late,
	})
}
