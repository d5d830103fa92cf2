package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentTaskModel merepresentasikan tabel student_tasks: penugasan satu
// task ke satu siswa. Index unik (student, task) menutup celah balapan
// pre-check-lalu-insert pada bulk assign.
type StudentTaskModel struct {
	StudentTaskID          uuid.UUID  `gorm:"column:student_task_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_task_id"`
	StudentTaskStudentID   uuid.UUID  `gorm:"column:student_task_student_id;type:uuid;not null;uniqueIndex:uq_student_tasks_pair,priority:1" json:"student_task_student_id"`
	StudentTaskTaskID      uuid.UUID  `gorm:"column:student_task_task_id;type:uuid;not null;index;uniqueIndex:uq_student_tasks_pair,priority:2" json:"student_task_task_id"`
	StudentTaskStatus      string     `gorm:"column:student_task_status;type:varchar(20);not null;default:'pending'" json:"student_task_status"`
	StudentTaskSubmittedAt *time.Time `gorm:"column:student_task_submitted_at" json:"student_task_submitted_at,omitempty"`
	StudentTaskNote        *string    `gorm:"column:student_task_note" json:"student_task_note,omitempty"`
	StudentTaskStudentNote *string    `gorm:"column:student_task_student_note" json:"student_task_student_note,omitempty"`
	StudentTaskCreatedAt   time.Time  `gorm:"column:student_task_created_at;autoCreateTime" json:"student_task_created_at"`
	StudentTaskUpdatedAt   time.Time  `gorm:"column:student_task_updated_at;autoUpdateTime" json:"student_task_updated_at"`
}

func (StudentTaskModel) TableName() string {
	return "student_tasks"
}
