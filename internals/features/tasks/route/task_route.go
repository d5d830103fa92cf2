package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskController "tahfidz_backend/internals/features/tasks/controller"
)

// TaskRoutes: semua endpoint task khusus guru.
// Router sudah ber-prefix /tasks dan dipasangi Auth + OnlyRoles(teacher).
func TaskRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db)

	router.Get("/", ctrl.List)
	router.Post("/", ctrl.Create)
	router.Get("/:id", ctrl.GetByID)
	router.Patch("/:id", ctrl.Update)
	router.Delete("/:id", ctrl.Delete)
	router.Post("/:id/assign", ctrl.Assign)
	router.Get("/:id/progress", ctrl.Progress)
	router.Get("/:id/students", ctrl.Students)
}
