package dto

import (
	"time"

	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
)

// TeacherUpdateRequest: PATCH /api/student-tasks/:id (guru).
type TeacherUpdateRequest struct {
	Status      *string    `json:"status"`
	Note        *string    `json:"note"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func (r *TeacherUpdateRequest) IsEmpty() bool {
	return r.Status == nil && r.Note == nil && r.SubmittedAt == nil
}

/// StudentUpdateRequest: PATCH /api/student/tasks/:id (siswa).
type StudentUpdateRequest struct {
	Status      *string    `json:"status"`
	StudentNote *string    `json:"student_note"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func (r *StudentUpdateRequest) IsEmpty() bool {
	return r.Status == nil && r.StudentNote == nil && r.SubmittedAt == nil
}

// TaskBrief menyertakan konteks task + section pada respons siswa.
type TaskBrief struct {
	TaskTitle    string     `json:"task_title"`
	TaskDeadline *time.Time `json:"task_deadline,omitempty"`
	SectionName  string     `json:"section_name"`
	TeacherName  string     `json:"teacher_name,omitempty"`
	TeacherPhone *string    `json:"teacher_phone,omitempty"`
}

type StudentTaskResponse struct {
	studentTaskModel.StudentTaskModel
	Task *TaskBrief `json:"task,omitempty"`
	Late bool       `json:"late,omitempty"` // تسليم متأخر — جزء من العقد وليس مجرد سجل
}

// RecentTask untuk GET /student/progress.
type RecentTask struct {
	Title       string     `json:"title"`
	Section     string     `json:"section"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}
