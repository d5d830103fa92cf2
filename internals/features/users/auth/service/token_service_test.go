package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/configs"
	userModel "tahfidz_backend/internals/features/users/user/model"
)

func TestGenerateTokenClaims(t *testing.T) {
	old := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = old })

	user := &userModel.UserModel{
		UserID:   uuid.New(),
		UserName: "الشيخ",
		UserRole: "teacher",
	}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, user.UserID.String(), claims["sub"])
	assert.Equal(t, "الشيخ", claims["user_name"])
	assert.Equal(t, "teacher", claims["role"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)

	sub, err := ParseSubject(claims)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, sub)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	old := configs.JWTSecret
	configs.JWTSecret = ""
	t.Cleanup(func() { configs.JWTSecret = old })

	_, err := GenerateToken(&userModel.UserModel{UserID: uuid.New()})
	assert.Error(t, err)
}
