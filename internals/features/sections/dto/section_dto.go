package dto

import (
	"strings"

	"github.com/google/uuid"

	sectionModel "tahfidz_backend/internals/features/sections/model"
	taskModel "tahfidz_backend/internals/features/tasks/model"
)

type CreateSectionRequest struct {
	SectionName        string     `json:"section_name" validate:"required,min=2,max=100"`
	SectionDescription *string    `json:"section_description" validate:"omitempty,max=500"`
	SectionParentID    *uuid.UUID `json:"section_parent_id"`
}

func (r *CreateSectionRequest) Normalize() {
	r.SectionName = strings.TrimSpace(r.SectionName)
	if r.SectionDescription != nil {
		d := strings.TrimSpace(*r.SectionDescription)
		if d == "" {
			r.SectionDescription = nil
		} else {
			r.SectionDescription = &d
		}
	}
}

func (r *CreateSectionRequest) ToModel(teacherID uuid.UUID) sectionModel.SectionModel {
	return sectionModel.SectionModel{
		SectionName:        r.SectionName,
		SectionDescription: r.SectionDescription,
		SectionTeacherID:   teacherID,
		SectionParentID:    r.SectionParentID,
	}
}

// UpdateSectionRequest: partial update. Pointer nil = tidak diubah.
// Pindah parent pakai SectionParentID; lepas ke root pakai SectionParentClear.
type UpdateSectionRequest struct {
	SectionName        *string    `json:"section_name" validate:"omitempty,min=2,max=100"`
	SectionDescription *string    `json:"section_description" validate:"omitempty,max=500"`
	SectionIcon        *string    `json:"section_icon"`
	SectionParentID    *uuid.UUID `json:"section_parent_id"`
	SectionParentClear bool       `json:"section_parent_clear"`
}

func (r *UpdateSectionRequest) Normalize() {
	if r.SectionName != nil {
		n := strings.TrimSpace(*r.SectionName)
		r.SectionName = &n
	}
	if r.SectionDescription != nil {
		d := strings.TrimSpace(*r.SectionDescription)
		r.SectionDescription = &d
	}
}

func (r *UpdateSectionRequest) IsEmpty() bool {
	return r.SectionName == nil &&
		r.SectionDescription == nil &&
		r.SectionIcon == nil &&
		r.SectionParentID == nil &&
		!r.SectionParentClear
}

// SectionCounts meniru blok _count pada respons lama.
type SectionCounts struct {
	Tasks    int `json:"tasks"`
	Children int `json:"children"`
}

type SectionResponse struct {
	sectionModel.SectionModel
	Counts *SectionCounts        `json:"counts,omitempty"`
	Tasks  []TaskWithAssignCount `json:"tasks,omitempty"`
}

type TaskWithAssignCount struct {
	taskModel.TaskModel
	StudentTaskCount int64 `json:"student_task_count"`
}
