// internals/features/tasks/controller/task_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tahfidz_backend/internals/constants"
	sectionModel "tahfidz_backend/internals/features/sections/model"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	taskDTO "tahfidz_backend/internals/features/tasks/dto"
	taskModel "tahfidz_backend/internals/features/tasks/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
)

var validate = validator.New()

type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// GET /api/tasks
// Query: ?page= & ?per_page= (default 20, max 100).
func (ctrl *TaskController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&taskModel.TaskModel{}).
		Where("task_teacher_id = ?", caller.ID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	var tasks []taskModel.TaskModel
	if err := ctrl.DB.
		Where("task_teacher_id = ?", caller.ID).
		Order("task_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&tasks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	sectionNames, err := ctrl.sectionNames(caller.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}
	assignCounts, err := ctrl.assignCounts(caller.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	out := make([]taskDTO.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp := taskDTO.TaskResponse{
			TaskModel:        t,
			StudentTaskCount: assignCounts[t.TaskID],
		}
		if name, ok := sectionNames[t.TaskSectionID]; ok {
			resp.Section = &taskDTO.SectionBrief{SectionID: t.TaskSectionID, SectionName: name}
		}
		out = append(out, resp)
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", out, &pagination)
}

// POST /api/tasks
func (ctrl *TaskController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req taskDTO.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	req.Normalize()
	if req.TaskTitle == "" || req.TaskSectionID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "العنوان والقسم مطلوبان")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}

	// section harus milik guru yang meminta
	var section sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_id = ? AND section_teacher_id = ?", req.TaskSectionID, caller.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في إضافة المهمة")
	}

	task := req.ToModel(caller.ID)
	if err := ctrl.DB.Create(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في إضافة المهمة")
	}
	return helper.JsonCreated(c, "تم إضافة المهمة بنجاح", task)
}

// GET /api/tasks/:id
func (ctrl *TaskController) GetByID(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}
	return helper.JsonOK(c, "ok", task)
}

// PATCH /api/tasks/:id
func (ctrl *TaskController) Update(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}

	var req taskDTO.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	if req.IsEmpty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "لا توجد بيانات للتحديث")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}

	if req.TaskTitle != nil {
		task.TaskTitle = *req.TaskTitle
	}
	if req.TaskDescription != nil {
		task.TaskDescription = req.TaskDescription
	}
	if req.TaskDeadline != nil {
		task.TaskDeadline = req.TaskDeadline
	}
	if req.TaskCompleted != nil {
		task.TaskCompleted = *req.TaskCompleted
	}

	if err := ctrl.DB.Save(task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تحديث المهمة")
	}
	return helper.JsonUpdated(c, "تم تحديث المهمة بنجاح", task)
}

// DELETE /api/tasks/:id — ikut menghapus student_tasks dalam satu transaksi.
func (ctrl *TaskController) Delete(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("student_task_task_id = ?", task.TaskID).
			Delete(&studentTaskModel.StudentTaskModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في حذف المهمة")
	}
	return helper.JsonDeleted(c, "تم حذف المهمة بنجاح", nil)
}

// POST /api/tasks/:id/assign
// Bulk assign idempoten: siswa yang sudah punya baris dilewati; balapan
// double-request ditutup index unik + ON CONFLICT DO NOTHING.
func (ctrl *TaskController) Assign(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}

	var req taskDTO.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil || len(req.StudentIDs) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "يجب تحديد قائمة بالطلاب")
	}

	var assignedCount int64
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// seluruh id harus siswa terdaftar — ditolak sebelum insert apapun
		var cnt int64
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_id IN ? AND user_role = ?", req.StudentIDs, constants.RoleStudent).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt != int64(len(dedupe(req.StudentIDs))) {
			return fiber.NewError(fiber.StatusBadRequest, "قائمة الطلاب تحتوي على معرّفات غير صالحة")
		}

		for _, studentID := range dedupe(req.StudentIDs) {
			row := studentTaskModel.StudentTaskModel{
				StudentTaskStudentID: studentID,
				StudentTaskTaskID:    task.TaskID,
				StudentTaskStatus:    constants.StatusPending,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "student_task_student_id"},
					{Name: "student_task_task_id"},
				},
				DoNothing: true,
			}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			assignedCount += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في تعيين المهمة")
	}

	return helper.JsonOK(c, "تم تعيين المهمة بنجاح", fiber.Map{
		"assigned_count": assignedCount,
	})
}

// GET /api/tasks/:id/progress
func (ctrl *TaskController) Progress(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}

	var rows []studentTaskModel.StudentTaskModel
	if err := ctrl.DB.
		Where("student_task_task_id = ?", task.TaskID).
		Order("student_task_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	studentIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		studentIDs = append(studentIDs, r.StudentTaskStudentID)
	}
	names := map[uuid.UUID]string{}
	if len(studentIDs) > 0 {
		var students []userModel.UserModel
		if err := ctrl.DB.
			Select("user_id", "user_name").
			Where("user_id IN ?", studentIDs).
			Find(&students).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
		}
		for _, s := range students {
			names[s.UserID] = s.UserName
		}
	}

	resp := taskDTO.TaskProgressResponse{
		Task:     taskDTO.TaskResponse{TaskModel: *task},
		Students: make([]taskDTO.ProgressRow, 0, len(rows)),
	}
	if name, ok := ctrl.sectionName(task.TaskSectionID); ok {
		resp.Task.Section = &taskDTO.SectionBrief{SectionID: task.TaskSectionID, SectionName: name}
	}
	for _, r := range rows {
		resp.Students = append(resp.Students, taskDTO.ProgressRow{
			StudentTaskID: r.StudentTaskID,
			StudentID:     r.StudentTaskStudentID,
			StudentName:   names[r.StudentTaskStudentID],
			Status:        r.StudentTaskStatus,
			SubmittedAt:   r.StudentTaskSubmittedAt,
			Note:          r.StudentTaskNote,
			StudentNote:   r.StudentTaskStudentNote,
		})
		if r.StudentTaskStatus == constants.StatusCompleted {
			resp.Completed++
		} else {
			resp.Pending++
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /api/tasks/:id/students — semua siswa + flag assigned untuk task ini.
func (ctrl *TaskController) Students(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	task, ferr := ctrl.ownedTask(c, caller.ID)
	if ferr != nil {
		return ferr
	}

	var students []userModel.UserModel
	if err := ctrl.DB.
		Select("user_id", "user_name").
		Where("user_role = ?", constants.RoleStudent).
		Order("user_name ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	var assigned []studentTaskModel.StudentTaskModel
	if err := ctrl.DB.
		Select("student_task_student_id").
		Where("student_task_task_id = ?", task.TaskID).
		Find(&assigned).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}
	assignedSet := make(map[uuid.UUID]struct{}, len(assigned))
	for _, a := range assigned {
		assignedSet[a.StudentTaskStudentID] = struct{}{}
	}

	out := make([]taskDTO.StudentAssignmentRow, 0, len(students))
	for _, s := range students {
		_, ok := assignedSet[s.UserID]
		out = append(out, taskDTO.StudentAssignmentRow{
			StudentID: s.UserID,
			Name:      s.UserName,
			Assigned:  ok,
		})
	}
	return helper.JsonOK(c, "ok", out)
}

/* ===============================
   Internal
=================================*/

// ownedTask memuat task dari :id dan memastikan milik guru pemanggil.
// Bukan milik caller → 404, bukan 401 (dibedakan dari kegagalan sesi).
func (ctrl *TaskController) ownedTask(c *fiber.Ctx, teacherID uuid.UUID) (*taskModel.TaskModel, error) {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "معرّف المهمة غير صالح")
	}
	var task taskModel.TaskModel
	if err := ctrl.DB.
		Where("task_id = ? AND task_teacher_id = ?", taskID, teacherID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "المهمة غير موجودة أو غير مصرح")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}
	return &task, nil
}

func (ctrl *TaskController) sectionNames(teacherID uuid.UUID) (map[uuid.UUID]string, error) {
	var sections []sectionModel.SectionModel
	if err := ctrl.DB.
		Select("section_id", "section_name").
		Where("section_teacher_id = ?", teacherID).
		Find(&sections).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(sections))
	for _, s := range sections {
		out[s.SectionID] = s.SectionName
	}
	return out, nil
}

func (ctrl *TaskController) sectionName(sectionID uuid.UUID) (string, bool) {
	var section sectionModel.SectionModel
	if err := ctrl.DB.
		Select("section_name").
		Where("section_id = ?", sectionID).
		First(&section).Error; err != nil {
		return "", false
	}
	return section.SectionName, true
}

func (ctrl *TaskController) assignCounts(teacherID uuid.UUID) (map[uuid.UUID]int64, error) {
	type countRow struct {
		ID uuid.UUID `gorm:"column:id"`
		N  int64     `gorm:"column:n"`
	}
	var rows []countRow
	if err := ctrl.DB.Model(&studentTaskModel.StudentTaskModel{}).
		Select("student_task_task_id AS id, COUNT(*) AS n").
		Where("student_task_task_id IN (?)",
			ctrl.DB.Model(&taskModel.TaskModel{}).
				Select("task_id").
				Where("task_teacher_id = ?", teacherID)).
		Group("student_task_task_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.N
	}
	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
