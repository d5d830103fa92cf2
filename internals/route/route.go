// internals/route/route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tahfidz_backend/internals/configs"
	"tahfidz_backend/internals/constants"
	sectionRoute "tahfidz_backend/internals/features/sections/route"
	studentTaskRoute "tahfidz_backend/internals/features/studenttasks/route"
	taskRoute "tahfidz_backend/internals/features/tasks/route"
	uploadRoute "tahfidz_backend/internals/features/uploads/route"
	authRoute "tahfidz_backend/internals/features/users/auth/route"
	studentRoute "tahfidz_backend/internals/features/users/students/route"
	"tahfidz_backend/internals/helpers/storage"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh endpoint di bawah /api.
// Guard dipasang per-prefix, bukan di group "/", supaya permukaan guru
// tidak ikut menangkap /api/student/*.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// 🔓 Publik — login dibatasi rate limiter-nya sendiri
	authRoute.AuthRoutes(api, db)

	authMW := authMiddleware.AuthMiddleware()
	teacherOnly := authMiddleware.OnlyRoles("هذه الصفحة مخصصة للمعلم فقط", constants.RoleTeacher)
	studentOnly := authMiddleware.OnlyRoles("هذه الصفحة مخصصة للطالب فقط", constants.RoleStudent)

	// 👳 Guru
	sectionRoute.SectionRoutes(api.Group("/sections", authMW, teacherOnly), db)
	taskRoute.TaskRoutes(api.Group("/tasks", authMW, teacherOnly), db)
	studentTaskRoute.StudentTaskTeacherRoutes(api.Group("/student-tasks", authMW, teacherOnly), db)
	studentRoute.StudentRoutes(api.Group("/students", authMW, teacherOnly), db)

	store := storage.NewIconStore(configs.UploadDir, configs.AppBaseURL)
	uploadRoute.UploadRoutes(api.Group("/upload", authMW, teacherOnly), db, store)

	// 🎓 Siswa
	studentTaskRoute.StudentTaskStudentRoutes(api.Group("/student", authMW, studentOnly), db)
}
