// internals/seeds/seed.go
package seeds

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"tahfidz_backend/internals/constants"
	sectionModel "tahfidz_backend/internals/features/sections/model"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
	taskModel "tahfidz_backend/internals/features/tasks/model"
	authService "tahfidz_backend/internals/features/users/auth/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
)

// Run mengisi data awal: الشيخ + 3 siswa + section/task contoh.
// Hanya jalan saat SEED=true, dan dilewati bila الشيخ sudah ada.
func Run(db *gorm.DB) {
	if os.Getenv("SEED") != "true" {
		return
	}
	log.Println("📥 Menjalankan seed data awal...")

	var existing userModel.UserModel
	if err := db.Where("user_name = ?", "الشيخ").First(&existing).Error; err == nil {
		log.Println("ℹ️ Seed sudah pernah jalan, dilewati.")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		teacher, err := seedUser(tx, "الشيخ", constants.RoleTeacher)
		if err != nil {
			return err
		}

		students := make([]userModel.UserModel, 0, 3)
		for _, name := range []string{"طالب1", "طالب2", "طالب3"} {
			s, err := seedUser(tx, name, constants.RoleStudent)
			if err != nil {
				return err
			}
			students = append(students, s)
		}

		sections := []sectionModel.SectionModel{
			{SectionName: "حفظ القرآن", SectionDescription: ptr("قسم مخصص لحفظ القرآن الكريم وتلاوته"), SectionTeacherID: teacher.UserID},
			{SectionName: "مراجعة الأحاديث", SectionDescription: ptr("قسم لمراجعة الأحاديث النبوية وحفظها"), SectionTeacherID: teacher.UserID},
			{SectionName: "الفقه", SectionDescription: ptr("قسم لدراسة أحكام الفقه الإسلامي"), SectionTeacherID: teacher.UserID},
		}
		if err := tx.Create(&sections).Error; err != nil {
			return err
		}

		week := time.Now().Add(7 * 24 * time.Hour)
		threeDays := time.Now().Add(3 * 24 * time.Hour)
		tasks := []taskModel.TaskModel{
			{TaskTitle: "حفظ سورة البقرة - الصفحات 1-2", TaskDescription: ptr("حفظ الصفحتين الأولى والثانية من سورة البقرة مع مراجعة التلاوة"), TaskSectionID: sections[0].SectionID, TaskTeacherID: teacher.UserID, TaskDeadline: &week},
			{TaskTitle: "مراجعة حديث الصيام", TaskDescription: ptr("مراجعة أحاديث الصيام من كتاب الأربعين النووية"), TaskSectionID: sections[1].SectionID, TaskTeacherID: teacher.UserID, TaskDeadline: &threeDays},
			{TaskTitle: "دراسة كتاب الطهارة", TaskDescription: ptr("قراءة ومراجعة باب الطهارة من كتاب الفقه الميسر"), TaskSectionID: sections[2].SectionID, TaskTeacherID: teacher.UserID},
			{TaskTitle: "تلاوة سورة يس", TaskDescription: ptr("تلاوة سورة يس مع التدبر في المعاني"), TaskSectionID: sections[0].SectionID, TaskTeacherID: teacher.UserID, TaskCompleted: true},
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return err
		}

		now := time.Now()
		assignments := []studentTaskModel.StudentTaskModel{
			{StudentTaskStudentID: students[0].UserID, StudentTaskTaskID: tasks[0].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
			{StudentTaskStudentID: students[1].UserID, StudentTaskTaskID: tasks[0].TaskID, StudentTaskStatus: constants.StatusPending},
			{StudentTaskStudentID: students[2].UserID, StudentTaskTaskID: tasks[0].TaskID, StudentTaskStatus: constants.StatusPending},
			{StudentTaskStudentID: students[0].UserID, StudentTaskTaskID: tasks[1].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
			{StudentTaskStudentID: students[1].UserID, StudentTaskTaskID: tasks[1].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
			{StudentTaskStudentID: students[0].UserID, StudentTaskTaskID: tasks[2].TaskID, StudentTaskStatus: constants.StatusPending},
			{StudentTaskStudentID: students[0].UserID, StudentTaskTaskID: tasks[3].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
			{StudentTaskStudentID: students[1].UserID, StudentTaskTaskID: tasks[3].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
			{StudentTaskStudentID: students[2].UserID, StudentTaskTaskID: tasks[3].TaskID, StudentTaskStatus: constants.StatusCompleted, StudentTaskSubmittedAt: &now},
		}
		return tx.Create(&assignments).Error
	})
	if err != nil {
		log.Println("❌ Seed gagal:", err)
		return
	}

	log.Println("✅ Seed selesai: 1 guru, 3 siswa, 3 section, 4 task, 9 penugasan")
}

func seedUser(tx *gorm.DB, name, role string) (userModel.UserModel, error) {
	hashed, err := authService.HashPassword("123456")
	if err != nil {
		return userModel.UserModel{}, err
	}
	u := userModel.UserModel{
		UserName:     name,
		UserPassword: hashed,
		UserRole:     role,
	}
	if err := tx.Create(&u).Error; err != nil {
		return userModel.UserModel{}, err
	}
	log.Printf("✅ User dibuat: %s (%s)", name, role)
	return u, nil
}

func ptr(s string) *string { return &s }
