package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentTaskController "tahfidz_backend/internals/features/studenttasks/controller"
)

// StudentTaskTeacherRoutes: koreksi record siswa oleh guru.
// Router sudah ber-prefix /student-tasks dan dipasangi Auth + OnlyRoles(teacher).
func StudentTaskTeacherRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := studentTaskController.NewTeacherStudentTaskController(db)
	router.Patch("/:id", ctrl.Update)
}

// StudentTaskStudentRoutes: permukaan milik siswa sendiri.
// Router sudah ber-prefix /student dan dipasangi Auth + OnlyRoles(student).
func StudentTaskStudentRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := studentTaskController.NewStudentTaskController(db)

	router.Get("/tasks", ctrl.List)
	router.Get("/tasks/:id", ctrl.GetByID)
	router.Patch("/tasks/:id", ctrl.Update)
	router.Get("/progress", ctrl.Progress)
}
