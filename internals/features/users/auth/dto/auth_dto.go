package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse: identitas + token. Password tidak pernah ikut keluar.
type LoginResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	UserRole string    `json:"user_role"`
	Token    string    `json:"token"`
}

type MeResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	UserRole string    `json:"user_role"`
	Phone    *string   `json:"user_phone,omitempty"`
}
