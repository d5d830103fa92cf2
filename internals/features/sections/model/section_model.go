package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionModel merepresentasikan tabel sections: pengelompokan tugas
// bertingkat (self-referential) milik satu guru.
//
// Catatan unik sibling: index komposit di bawah menjaga nama unik per
// (guru, parent) untuk parent non-NULL; duplikat pada level root
// (parent NULL, NULL != NULL di Postgres) ditangkap oleh pre-check
// ber-transaksi di controller.
type SectionModel struct {
	SectionID          uuid.UUID  `gorm:"column:section_id;type:uuid;default:gen_random_uuid();primaryKey" json:"section_id"`
	SectionName        string     `gorm:"column:section_name;size:100;not null;uniqueIndex:uq_sections_name_per_parent,priority:3" json:"section_name"`
	SectionDescription *string    `gorm:"column:section_description" json:"section_description,omitempty"`
	SectionIcon        *string    `gorm:"column:section_icon" json:"section_icon,omitempty"`
	SectionTeacherID   uuid.UUID  `gorm:"column:section_teacher_id;type:uuid;not null;index;uniqueIndex:uq_sections_name_per_parent,priority:1" json:"section_teacher_id"`
	SectionParentID    *uuid.UUID `gorm:"column:section_parent_id;type:uuid;index;uniqueIndex:uq_sections_name_per_parent,priority:2" json:"section_parent_id,omitempty"`
	SectionCreatedAt   time.Time  `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt   time.Time  `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string {
	return "sections"
}
