package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	taskModel "tahfidz_backend/internals/features/tasks/model"
)

type CreateTaskRequest struct {
	TaskTitle       string     `json:"task_title" validate:"required,min=2,max=200"`
	TaskDescription *string    `json:"task_description" validate:"omitempty,max=2000"`
	TaskSectionID   uuid.UUID  `json:"task_section_id" validate:"required"`
	TaskDeadline    *time.Time `json:"task_deadline"`
}

func (r *CreateTaskRequest) Normalize() {
	r.TaskTitle = strings.TrimSpace(r.TaskTitle)
	if r.TaskDescription != nil {
		d := strings.TrimSpace(*r.TaskDescription)
		if d == "" {
			r.TaskDescription = nil
		} else {
			r.TaskDescription = &d
		}
	}
}

func (r *CreateTaskRequest) ToModel(teacherID uuid.UUID) taskModel.TaskModel {
	return taskModel.TaskModel{
		TaskTitle:       r.TaskTitle,
		TaskDescription: r.TaskDescription,
		TaskSectionID:   r.TaskSectionID,
		TaskTeacherID:   teacherID,
		TaskDeadline:    r.TaskDeadline,
	}
}

// UpdateTaskRequest: partial update (toggle completed, edit judul/deskripsi/deadline).
type UpdateTaskRequest struct {
	TaskTitle       *string    `json:"task_title" validate:"omitempty,min=2,max=200"`
	TaskDescription *string    `json:"task_description" validate:"omitempty,max=2000"`
	TaskDeadline    *time.Time `json:"task_deadline"`
	TaskCompleted   *bool      `json:"task_completed"`
}

func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.TaskTitle == nil &&
		r.TaskDescription == nil &&
		r.TaskDeadline == nil &&
		r.TaskCompleted == nil
}

type AssignTaskRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1"`
}

type SectionBrief struct {
	SectionID   uuid.UUID `json:"section_id"`
	SectionName string    `json:"section_name"`
}

type TaskResponse struct {
	taskModel.TaskModel
	Section          *SectionBrief `json:"section,omitempty"`
	StudentTaskCount int64         `json:"student_task_count"`
}

// StudentAssignmentRow untuk GET /tasks/:id/students.
type StudentAssignmentRow struct {
	StudentID uuid.UUID `json:"student_id"`
	Name      string    `json:"name"`
	Assigned  bool      `json:"assigned"`
}

// ProgressRow untuk GET /tasks/:id/progress.
type ProgressRow struct {
	StudentTaskID uuid.UUID  `json:"student_task_id"`
	StudentID     uuid.UUID  `json:"student_id"`
	StudentName   string     `json:"student_name"`
	Status        string     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	Note          *string    `json:"note,omitempty"`
	StudentNote   *string    `json:"student_note,omitempty"`
}

type TaskProgressResponse struct {
	Task      TaskResponse  `json:"task"`
	Students  []ProgressRow `json:"students"`
	Completed int           `json:"completed"`
	Pending   int           `json:"pending"`
}
