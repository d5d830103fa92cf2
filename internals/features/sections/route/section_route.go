package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sectionController "tahfidz_backend/internals/features/sections/controller"
)

// SectionRoutes: semua endpoint section khusus guru.
// Router sudah ber-prefix /sections dan dipasangi Auth + OnlyRoles(teacher).
func SectionRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := sectionController.NewSectionController(db)

	router.Get("/", ctrl.List)
	router.Post("/", ctrl.Create)
	router.Get("/tree", ctrl.Tree) // harus sebelum /:id
	router.Get("/:id", ctrl.GetByID)
	router.Put("/:id", ctrl.Update)
	router.Delete("/:id", ctrl.Delete)
	router.Get("/:id/tasks", ctrl.TasksBySection)
}
