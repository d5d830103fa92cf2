// internals/features/sections/controller/section_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	sectionDTO "tahfidz_backend/internals/features/sections/dto"
	sectionModel "tahfidz_backend/internals/features/sections/model"
	"tahfidz_backend/internals/features/sections/tree"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	taskModel "tahfidz_backend/internals/features/tasks/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
)

var validate = validator.New()

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

// GET /api/sections
// Query: flat=true (tanpa counts/tasks), includeCounts=false, includeTasks=true
func (ctrl *SectionController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sections []sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_teacher_id = ?", caller.ID).
		Order("section_created_at DESC").
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	if c.Query("flat") == "true" {
		return helper.JsonOK(c, "ok", sections)
	}

	includeCounts := c.Query("includeCounts", "true") != "false"
	includeTasks := c.Query("includeTasks") == "true"

	var taskCounts, childCounts map[uuid.UUID]int
	if includeCounts {
		taskCounts, err = ctrl.taskCountsPerSection(caller.ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
		}
		childCounts, err = ctrl.childCountsPerSection(caller.ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
		}
	}

	var tasksBySection map[uuid.UUID][]sectionDTO.TaskWithAssignCount
	if includeTasks {
		tasksBySection, err = ctrl.tasksWithAssignCounts(caller.ID, nil)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
		}
	}

	out := make([]sectionDTO.SectionResponse, 0, len(sections))
	for _, s := range sections {
		resp := sectionDTO.SectionResponse{SectionModel: s}
		if includeCounts {
			resp.Counts = &sectionDTO.SectionCounts{
				Tasks:    taskCounts[s.SectionID],
				Children: childCounts[s.SectionID],
			}
		}
		if includeTasks {
			resp.Tasks = tasksBySection[s.SectionID]
		}
		out = append(out, resp)
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/sections
func (ctrl *SectionController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req sectionDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	req.Normalize()
	if req.SectionName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "اسم القسم مطلوب")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, "اسم القسم مطلوب", validationFieldErrors(err))
	}

	var created sectionModel.SectionModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// parent (jika ada) harus milik guru yang sama — ditolak saat tulis,
		// bukan di-drop diam-diam saat baca
		if req.SectionParentID != nil {
			var parent sectionModel.SectionModel
			if err := tx.
				Where("section_id = ? AND section_teacher_id = ?", *req.SectionParentID, caller.ID).
				First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "القسم الأب غير موجود")
				}
				return err
			}
		}

		// unik sibling: nama sama di bawah parent sama (atau sama-sama root)
		dupQuery := tx.Model(&sectionModel.SectionModel{}).
			Where("section_teacher_id = ? AND section_name = ?", caller.ID, req.SectionName)
		if req.SectionParentID == nil {
			dupQuery = dupQuery.Where("section_parent_id IS NULL")
		} else {
			dupQuery = dupQuery.Where("section_parent_id = ?", *req.SectionParentID)
		}
		var cnt int64
		if err := dupQuery.Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "اسم القسم موجود مسبقاً")
		}

		created = req.ToModel(caller.ID)
		if err := tx.Create(&created).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "اسم القسم موجود مسبقاً")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في إضافة القسم")
	}

	return helper.JsonCreated(c, "تم إضافة القسم بنجاح", created)
}

// GET /api/sections/:id
func (ctrl *SectionController) GetByID(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_id = ? AND section_teacher_id = ?", sectionID, caller.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب القسم")
	}

	tasksBySection, err := ctrl.tasksWithAssignCounts(caller.ID, &sectionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب القسم")
	}
	var childCount int64
	if err := ctrl.DB.Model(&sectionModel.SectionModel{}).
		Where("section_parent_id = ?", sectionID).
		Count(&childCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب القسم")
	}

	tasks := tasksBySection[sectionID]
	resp := sectionDTO.SectionResponse{
		SectionModel: section,
		Counts: &sectionDTO.SectionCounts{
			Tasks:    len(tasks),
			Children: int(childCount),
		},
		Tasks: tasks,
	}
	return helper.JsonOK(c, "ok", resp)
}

// PUT /api/sections/:id
func (ctrl *SectionController) Update(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	var req sectionDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "البيانات المرسلة غير صالحة")
	}
	req.Normalize()
	if req.IsEmpty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "لا توجد بيانات للتحديث")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, "البيانات المرسلة غير صالحة", validationFieldErrors(err))
	}

	var updated sectionModel.SectionModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var section sectionModel.SectionModel
		if err := tx.
			Where("section_id = ? AND section_teacher_id = ?", sectionID, caller.ID).
			First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
			}
			return err
		}

		if req.SectionName != nil {
			section.SectionName = *req.SectionName
		}
		if req.SectionDescription != nil {
			section.SectionDescription = req.SectionDescription
		}
		if req.SectionIcon != nil {
			section.SectionIcon = req.SectionIcon
		}

		if req.SectionParentClear {
			section.SectionParentID = nil
		} else if req.SectionParentID != nil {
			newParent := *req.SectionParentID
			if newParent == section.SectionID {
				return fiber.NewError(fiber.StatusBadRequest, "لا يمكن نقل القسم إلى نفسه")
			}
			var parent sectionModel.SectionModel
			if err := tx.
				Where("section_id = ? AND section_teacher_id = ?", newParent, caller.ID).
				First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "القسم الأب غير موجود")
				}
				return err
			}
			// tolak dorongan ke keturunan sendiri (siklus)
			isDesc, err := ctrl.isDescendant(tx, caller.ID, section.SectionID, newParent)
			if err != nil {
				return err
			}
			if isDesc {
				return fiber.NewError(fiber.StatusBadRequest, "لا يمكن نقل القسم إلى قسم فرعي منه")
			}
			section.SectionParentID = &newParent
		}

		if err := tx.Save(&section).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "اسم القسم موجود مسبقاً")
			}
			return err
		}
		updated = section
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ أثناء تعديل القسم")
	}

	return helper.JsonUpdated(c, "تم تعديل القسم بنجاح", updated)
}

// DELETE /api/sections/:id
// Kebijakan eksplisit: tolak bila masih punya anak atau task (409);
// caller harus memindahkan/menghapusnya dulu.
func (ctrl *SectionController) Delete(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var section sectionModel.SectionModel
		if err := tx.
			Where("section_id = ? AND section_teacher_id = ?", sectionID, caller.ID).
			First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
			}
			return err
		}

		var childCnt int64
		if err := tx.Model(&sectionModel.SectionModel{}).
			Where("section_parent_id = ?", sectionID).
			Count(&childCnt).Error; err != nil {
			return err
		}
		if childCnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "لا يمكن حذف قسم يحتوي على أقسام فرعية")
		}

		var taskCnt int64
		if err := tx.Model(&taskModel.TaskModel{}).
			Where("task_section_id = ?", sectionID).
			Count(&taskCnt).Error; err != nil {
			return err
		}
		if taskCnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "لا يمكن حذف قسم يحتوي على مهام")
		}

		return tx.Delete(&section).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ أثناء حذف القسم")
	}

	return helper.JsonDeleted(c, "تم حذف القسم بنجاح", nil)
}

// GET /api/sections/:id/tasks
func (ctrl *SectionController) TasksBySection(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_id = ? AND section_teacher_id = ?", sectionID, caller.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}

	tasksBySection, err := ctrl.tasksWithAssignCounts(caller.ID, &sectionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب البيانات")
	}
	tasks := tasksBySection[sectionID]
	if tasks == nil {
		tasks = []sectionDTO.TaskWithAssignCount{}
	}
	return helper.JsonOK(c, "ok", tasks)
}

// GET /api/sections/tree
// Query: q= (filter), sort= name|tasks|children
func (ctrl *SectionController) Tree(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sections []sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_teacher_id = ?", caller.ID).
		Order("section_created_at ASC").
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ أثناء جلب شجرة الأقسام")
	}

	taskCounts, err := ctrl.taskCountsPerSection(caller.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ أثناء جلب شجرة الأقسام")
	}

	rows := make([]tree.Flat, 0, len(sections))
	for _, s := range sections {
		desc := ""
		if s.SectionDescription != nil {
			desc = *s.SectionDescription
		}
		rows = append(rows, tree.Flat{
			ID:          s.SectionID,
			ParentID:    s.SectionParentID,
			Name:        s.SectionName,
			Description: desc,
			Icon:        s.SectionIcon,
			TaskCount:   taskCounts[s.SectionID],
			CreatedAt:   s.SectionCreatedAt,
		})
	}

	forest := tree.Build(rows)
	if q := c.Query("q"); q != "" {
		forest = tree.Filter(forest, q)
	}
	if sortKey := c.Query("sort"); sortKey != "" {
		forest = tree.Sort(forest, tree.ParseSortKey(sortKey))
	}
	if forest == nil {
		forest = []*tree.Node{}
	}
	return helper.JsonOK(c, "ok", forest)
}

/* ===============================
   Internal queries
=================================*/

type countRow struct {
	ID uuid.UUID `gorm:"column:id"`
	N  int64     `gorm:"column:n"`
}

func (ctrl *SectionController) taskCountsPerSection(teacherID uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []countRow
	if err := ctrl.DB.Model(&taskModel.TaskModel{}).
		Select("task_section_id AS id, COUNT(*) AS n").
		Where("task_teacher_id = ?", teacherID).
		Group("task_section_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		out[r.ID] = int(r.N)
	}
	return out, nil
}

func (ctrl *SectionController) childCountsPerSection(teacherID uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []countRow
	if err := ctrl.DB.Model(&sectionModel.SectionModel{}).
		Select("section_parent_id AS id, COUNT(*) AS n").
		Where("section_teacher_id = ? AND section_parent_id IS NOT NULL", teacherID).
		Group("section_parent_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		out[r.ID] = int(r.N)
	}
	return out, nil
}

// tasksWithAssignCounts mengambil task milik guru (opsional: satu section)
// beserta jumlah penugasannya, dikelompokkan per section.
func (ctrl *SectionController) tasksWithAssignCounts(teacherID uuid.UUID, sectionID *uuid.UUID) (map[uuid.UUID][]sectionDTO.TaskWithAssignCount, error) {
	q := ctrl.DB.Where("task_teacher_id = ?", teacherID)
	if sectionID != nil {
		q = q.Where("task_section_id = ?", *sectionID)
	}
	var tasks []taskModel.TaskModel
	if err := q.Order("task_created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	var assignRows []countRow
	if err := ctrl.DB.Model(&studentTaskModel.StudentTaskModel{}).
		Select("student_task_task_id AS id, COUNT(*) AS n").
		Where("student_task_task_id IN (?)",
			ctrl.DB.Model(&taskModel.TaskModel{}).
				Select("task_id").
				Where("task_teacher_id = ?", teacherID)).
		Group("student_task_task_id").
		Scan(&assignRows).Error; err != nil {
		return nil, err
	}
	assignCounts := make(map[uuid.UUID]int64, len(assignRows))
	for _, r := range assignRows {
		assignCounts[r.ID] = r.N
	}

	out := make(map[uuid.UUID][]sectionDTO.TaskWithAssignCount)
	for _, t := range tasks {
		out[t.TaskSectionID] = append(out[t.TaskSectionID], sectionDTO.TaskWithAssignCount{
			TaskModel:        t,
			StudentTaskCount: assignCounts[t.TaskID],
		})
	}
	return out, nil
}

// isDescendant: apakah candidate berada dalam subtree yang berakar di rootID.
func (ctrl *SectionController) isDescendant(tx *gorm.DB, teacherID, rootID, candidate uuid.UUID) (bool, error) {
	var sections []sectionModel.SectionModel
	if err := tx.
		Select("section_id", "section_parent_id").
		Where("section_teacher_id = ?", teacherID).
		Find(&sections).Error; err != nil {
		return false, err
	}
	parentOf := make(map[uuid.UUID]*uuid.UUID, len(sections))
	for _, s := range sections {
		parentOf[s.SectionID] = s.SectionParentID
	}
	cur := candidate
	for i := 0; i < len(sections)+1; i++ {
		p, ok := parentOf[cur]
		if !ok || p == nil {
			return false, nil
		}
		if *p == rootID {
			return true, nil
		}
		cur = *p
	}
	return false, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// validationFieldErrors memetakan error validator per field → daftar tag
// yang gagal, untuk blok errors pada amplop validasi.
func validationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}
