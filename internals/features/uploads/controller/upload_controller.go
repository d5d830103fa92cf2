// internals/features/uploads/controller/upload_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sectionModel "tahfidz_backend/internals/features/sections/model"
	helper "tahfidz_backend/internals/helpers"
	helperAuth "tahfidz_backend/internals/helpers/auth"
	"tahfidz_backend/internals/helpers/storage"
)

type UploadController struct {
	DB    *gorm.DB
	Store *storage.IconStore
}

func NewUploadController(db *gorm.DB, store *storage.IconStore) *UploadController {
	return &UploadController{DB: db, Store: store}
}

// =============================
// 📤 POST /api/upload
// =============================
// Multipart: field "icon" (file) + "section_id". Ikon divalidasi & dinormalkan
// (raster >512px di-resize), lalu section_icon diarahkan ke URL publiknya.
func (ctrl *UploadController) Upload(c *fiber.Ctx) error {
	return ctrl.store(c, helper.JsonCreated, "تم رفع الأيقونة بنجاح")
}

// =============================
// 🔁 PUT /api/upload
// =============================
// Sama dengan POST, plus hapus best-effort file ikon lama.
func (ctrl *UploadController) Replace(c *fiber.Ctx) error {
	return ctrl.store(c, helper.JsonUpdated, "تم تحديث الأيقونة بنجاح")
}

// =============================
// 🗑 DELETE /api/upload
// =============================
// Body JSON {"section_id": ...}: kosongkan section_icon, hapus file best-effort.
func (ctrl *UploadController) Delete(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body struct {
		SectionID string `json:"section_id"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.SectionID) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم مطلوب")
	}
	sectionID, err := uuid.Parse(strings.TrimSpace(body.SectionID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	section, err := ctrl.ownedSection(c, sectionID, caller.ID)
	if err != nil {
		return err
	}

	oldIcon := section.SectionIcon
	if err := ctrl.DB.Model(section).Update("section_icon", nil).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في حذف الأيقونة")
	}
	if oldIcon != nil {
		ctrl.Store.DeleteByPublicURL(*oldIcon)
	}

	return helper.JsonDeleted(c, "تم حذف الأيقونة بنجاح", fiber.Map{"section_id": sectionID})
}

// =============================
// 🛠 Internal
// =============================

func (ctrl *UploadController) store(c *fiber.Ctx, respond func(*fiber.Ctx, string, interface{}) error, message string) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	sectionRaw := strings.TrimSpace(c.FormValue("section_id"))
	if sectionRaw == "" {
		sectionRaw = strings.TrimSpace(c.FormValue("sectionId"))
	}
	if sectionRaw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم مطلوب")
	}
	sectionID, err := uuid.Parse(sectionRaw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القسم غير صالح")
	}

	fh, err := c.FormFile("icon")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ملف الأيقونة مطلوب")
	}

	section, err := ctrl.ownedSection(c, sectionID, caller.ID)
	if err != nil {
		return err
	}

	icon, err := storage.ProcessIcon(fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	filename := storage.GenerateIconFilename(icon.Ext)
	publicURL, err := ctrl.Store.Save(filename, icon.Data)
	if err != nil {
		log.Println("[ERROR] Gagal simpan ikon:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في رفع الأيقونة")
	}

	oldIcon := section.SectionIcon
	if err := ctrl.DB.Model(section).Update("section_icon", publicURL).Error; err != nil {
		ctrl.Store.DeleteByPublicURL(publicURL) // jangan tinggalkan file tanpa referensi
		return helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في رفع الأيقونة")
	}
	if oldIcon != nil && *oldIcon != publicURL {
		ctrl.Store.DeleteByPublicURL(*oldIcon)
	}

	return respond(c, message, fiber.Map{
		"section_id":   sectionID,
		"section_icon": publicURL,
	})
}

func (ctrl *UploadController) ownedSection(c *fiber.Ctx, sectionID, teacherID uuid.UUID) (*sectionModel.SectionModel, error) {
	var section sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_id = ? AND section_teacher_id = ?", sectionID, teacherID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "القسم غير موجود أو غير مصرح")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "حدث خطأ في جلب بيانات القسم")
	}
	return &section, nil
}
