// internals/features/studenttasks/controller/student_task_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tahfidz_backend/internals/constants"
	sectionModel "tahfidz_backend/internals/features/sections/model"
	studentTaskDTO "tahfidz_backend/internals/features/studenttasks/dto"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	"tahfidz_backend/internals/features/studenttasks/service"
	taskModel "tahfidz_backend/internals/features/tasks/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
)

type StudentTaskController struct {
	DB *gorm.DB
}

func NewStudentTaskController(db *gorm.DB) *StudentTaskController {
	return &StudentTaskController{DB: db}
}

// =============================
// 📋 GET /api/student/tasks
// =============================
// Daftar penugasan milik siswa pemanggil beserta ringkasan task-nya.
// Query: ?page= & ?per_page= (default 20, max 100).
func (ctrl *StudentTaskController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&studentTaskModel.StudentTaskModel{}).
		Where("student_task_student_id = ?", caller.ID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب مهام الطالب")
	}

	var records []studentTaskModel.StudentTaskModel
	if err := ctrl.DB.
		Where("student_task_student_id = ?", caller.ID).
		Order("student_task_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب مهام الطالب")
	}

	briefs, err := ctrl.taskBriefs(records)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب مهام الطالب")
	}

	now := time.Now()
	resp := make([]studentTaskDTO.StudentTaskResponse, 0, len(records))
	for _, st := range records {
		brief := briefs[st.StudentTaskTaskID]
		resp = append(resp, studentTaskDTO.StudentTaskResponse{
			StudentTaskModel: st,
			Task:             brief,
			Late:             isLate(st, brief, now),
		})
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "OK", resp, &pagination)
}

// =============================
// 🔍 GET /api/student/tasks/:id
// =============================
func (ctrl *StudentTaskController) GetByID(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف السجل غير صالح")
	}

	st, err := ctrl.ownedRecord(c, recordID, caller.ID)
	if err != nil {
		return err
	}

	briefs, err := ctrl.taskBriefs([]studentTaskModel.StudentTaskModel{*st})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب مهمة الطالب")
	}
	brief := briefs[st.StudentTaskTaskID]

	return helper.JsonOK(c, "OK", studentTaskDTO.StudentTaskResponse{
		StudentTaskModel: *st,
		Task:             brief,
		Late:             isLate(*st, brief, time.Now()),
	})
}

// =============================
// ✏️ PATCH /api/student/tasks/:id
// =============================
// Siswa menandai selesai/belum dan menulis catatan pribadinya sendiri.
func (ctrl *StudentTaskController) Update(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف السجل غير صالح")
	}

	var req studentTaskDTO.StudentUpdateRequest
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
	if req.StudentNote != nil {
		if err := service.ValidateNote(*req.StudentNote); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	st, err := ctrl.ownedRecord(c, recordID, caller.ID)
	if err != nil {
		return err
	}

	var task taskModel.TaskModel
	if err := ctrl.DB.Where("task_id = ?", st.StudentTaskTaskID).First(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث مهمة الطالب")
	}

	late := false
	if req.Status != nil {
		late = service.ApplyStatusChange(st, *req.Status, req.SubmittedAt, task.TaskDeadline, time.Now())
	} else if req.SubmittedAt != nil {
		st.StudentTaskSubmittedAt = req.SubmittedAt
	}
	if req.StudentNote != nil {
		trimmed := strings.TrimSpace(*req.StudentNote)
		st.StudentTaskStudentNote = &trimmed
	}

	if err := ctrl.DB.Save(st).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث مهمة الطالب")
	}

	return helper.JsonUpdated(c, "تم تحديث المهمة بنجاح", studentTaskDTO.StudentTaskResponse{
		StudentTaskModel: *st,
		Late:             late,
	})
}

// =============================
// 📊 GET /api/student/progress
// =============================
func (ctrl *StudentTaskController) Progress(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var records []studentTaskModel.StudentTaskModel
	if err := ctrl.DB.
		Where("student_task_student_id = ?", caller.ID).
		Order("student_task_created_at DESC").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب تقدم الطالب")
	}

	statuses := make([]string, 0, len(records))
	for _, st := range records {
		statuses = append(statuses, st.StudentTaskStatus)
	}
	stats := service.ComputeProgress(statuses)

	briefs, err := ctrl.taskBriefs(records)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب تقدم الطالب")
	}

	recent := make([]studentTaskDTO.RecentTask, 0, 5)
	for _, st := range records {
		if len(recent) == 5 {
			break
		}
		title, section := "", ""
		if brief := briefs[st.StudentTaskTaskID]; brief != nil {
			title, section = brief.TaskTitle, brief.SectionName
		}
		recent = append(recent, studentTaskDTO.RecentTask{
			Title:       title,
			Section:     section,
			Status:      st.StudentTaskStatus,
			SubmittedAt: st.StudentTaskSubmittedAt,
		})
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"stats":        stats,
		"recent_tasks": recent,
	})
}

// =============================
// 🛠 Internal
// =============================

// ownedRecord memuat record yg benar2 milik siswa pemanggil.
func (ctrl *StudentTaskController) ownedRecord(c *fiber.Ctx, recordID, studentID uuid.UUID) (*studentTaskModel.StudentTaskModel, error) {
	var st studentTaskModel.StudentTaskModel
	if err := ctrl.DB.
		Where("student_task_id = ? AND student_task_student_id = ?", recordID, studentID).
		First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "سجل مهمة الطالب غير موجود أو غير مصرح")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب مهمة الطالب")
	}
	return &st, nil
}

// taskBriefs memuat konteks task (judul, deadline, nama section, kontak guru)
// untuk sekumpulan record — tiga query batch, bukan N+1.
func (ctrl *StudentTaskController) taskBriefs(records []studentTaskModel.StudentTaskModel) (map[uuid.UUID]*studentTaskDTO.TaskBrief, error) {
	out := make(map[uuid.UUID]*studentTaskDTO.TaskBrief, len(records))
	if len(records) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, st := range records {
		ids = append(ids, st.StudentTaskTaskID)
	}
	var tasks []taskModel.TaskModel
	if err := ctrl.DB.Where("task_id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}

	sectionIDs := make([]uuid.UUID, 0, len(tasks))
	teacherIDs := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		sectionIDs = append(sectionIDs, t.TaskSectionID)
		teacherIDs = append(teacherIDs, t.TaskTeacherID)
	}

	sectionNames := map[uuid.UUID]string{}
	if len(sectionIDs) > 0 {
		var rows []sectionModel.SectionModel
		if err := ctrl.DB.Select("section_id", "section_name").
			Where("section_id IN ?", sectionIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, s := range rows {
			sectionNames[s.SectionID] = s.SectionName
		}
	}

	teachers := map[uuid.UUID]userModel.UserModel{}
	if len(teacherIDs) > 0 {
		var rows []userModel.UserModel
		if err := ctrl.DB.Select("user_id", "user_name", "user_phone").
			Where("user_id IN ?", teacherIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			teachers[u.UserID] = u
		}
	}

	for _, t := range tasks {
		brief := &studentTaskDTO.TaskBrief{
			TaskTitle:    t.TaskTitle,
			TaskDeadline: t.TaskDeadline,
			SectionName:  sectionNames[t.TaskSectionID],
		}
		if u, ok := teachers[t.TaskTeacherID]; ok {
			brief.TeacherName = u.UserName
			brief.TeacherPhone = u.UserPhone
		}
		out[t.TaskID] = brief
	}
	return out, nil
}

// isLate: selesai tapi diserahkan melewati deadline task-nya.
func isLate(st studentTaskModel.StudentTaskModel, brief *studentTaskDTO.TaskBrief, now time.Time) bool {
	if st.StudentTaskStatus != constants.StatusCompleted || brief == nil || brief.TaskDeadline == nil {
		return false
	}
	submitted := now
	if st.StudentTaskSubmittedAt != nil {
		submitted = *st.StudentTaskSubmittedAt
	}
	return submitted.After(*brief.TaskDeadline)
}
