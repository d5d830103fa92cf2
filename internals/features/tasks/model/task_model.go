package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel merepresentasikan tabel tasks: unit pekerjaan dalam satu
// section, milik satu guru. task_completed adalah flag milik guru,
// terpisah dari status per-siswa di student_tasks.
type TaskModel struct {
	TaskID          uuid.UUID  `gorm:"column:task_id;type:uuid;default:gen_random_uuid();primaryKey" json:"task_id"`
	TaskTitle       string     `gorm:"column:task_title;size:200;not null" json:"task_title"`
	TaskDescription *string    `gorm:"column:task_description" json:"task_description,omitempty"`
	TaskSectionID   uuid.UUID  `gorm:"column:task_section_id;type:uuid;not null;index" json:"task_section_id"`
	TaskTeacherID   uuid.UUID  `gorm:"column:task_teacher_id;type:uuid;not null;index" json:"task_teacher_id"`
	TaskDeadline    *time.Time `gorm:"column:task_deadline" json:"task_deadline,omitempty"`
	TaskCompleted   bool       `gorm:"column:task_completed;not null;default:false" json:"task_completed"`
	TaskCreatedAt   time.Time  `gorm:"column:task_created_at;autoCreateTime" json:"task_created_at"`
	TaskUpdatedAt   time.Time  `gorm:"column:task_updated_at;autoUpdateTime" json:"task_updated_at"`
}

func (TaskModel) TableName() string {
	return "tasks"
}
