package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"tahfidz_backend/internals/configs"
	userModel "tahfidz_backend/internals/features/users/user/model"
)

// TokenTTL masa berlaku access token.
const TokenTTL = 24 * time.Hour

// GenerateToken menerbitkan JWT HS256 berisi identitas user.
// Klaim mengikuti yang dibaca AuthMiddleware: sub, user_name, role, exp.
func GenerateToken(user *userModel.UserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSubject mengambil user id dari token yang sudah terverifikasi middleware.
func ParseSubject(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("sub claim tidak ada")
	}
	return uuid.Parse(sub)
}
