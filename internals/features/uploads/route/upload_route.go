package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadController "tahfidz_backend/internals/features/uploads/controller"
	"tahfidz_backend/internals/helpers/storage"
)

// UploadRoutes: unggah/ganti/hapus ikon section, khusus guru.
// Router sudah ber-prefix /upload dan dipasangi Auth + OnlyRoles(teacher).
func UploadRoutes(router fiber.Router, db *gorm.DB, store *storage.IconStore) {
	ctrl := uploadController.NewUploadController(db, store)

	router.Post("/", ctrl.Upload)
	router.Put("/", ctrl.Replace)
	router.Delete("/", ctrl.Delete)
}
