package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users: satu guru (الشيخ) dan para siswa.
// Password selalu berupa hash bcrypt, tidak pernah plaintext.
type UserModel struct {
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName      string    `gorm:"column:user_name;size:50;not null;uniqueIndex:uq_users_name" json:"user_name"`
	UserPassword  string    `gorm:"column:user_password;not null" json:"-"`
	UserRole      string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserPhone     *string   `gorm:"column:user_phone;size:30" json:"user_phone,omitempty"`
	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
