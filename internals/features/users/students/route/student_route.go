package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "tahfidz_backend/internals/features/users/students/controller"
)

// StudentRoutes: manajemen akun siswa, khusus guru.
// Router sudah ber-prefix /students dan dipasangi Auth + OnlyRoles(teacher).
func StudentRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	router.Get("/", ctrl.List)
	router.Post("/", ctrl.Create)
	router.Delete("/:id", ctrl.Delete)
}
