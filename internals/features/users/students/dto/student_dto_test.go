package dto

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateStudentRequestNormalize(t *testing.T) {
	req := CreateStudentRequest{Name: "  طالب1  ", Password: "123456", Phone: strPtr("  ")}
	req.Normalize()
	assert.Equal(t, "طالب1", req.Name)
	assert.Nil(t, req.Phone) // nomor kosong dianggap tidak diisi

	req = CreateStudentRequest{Name: "طالب2", Password: "123456", Phone: strPtr(" 0551234567 ")}
	req.Normalize()
	require.NotNil(t, req.Phone)
	assert.Equal(t, "0551234567", *req.Phone)
}

func TestCreateStudentRequestValidate(t *testing.T) {
	valid := CreateStudentRequest{Name: "طالب1", Password: "123456"}
	assert.NoError(t, valid.Validate())

	withPhone := CreateStudentRequest{Name: "طالب1", Password: "123456", Phone: strPtr("+966551234567")}
	assert.NoError(t, withPhone.Validate())

	cases := []struct {
		name string
		req  CreateStudentRequest
	}{
		{"nama terlalu pendek", CreateStudentRequest{Name: "ط", Password: "123456"}},
		{"password terlalu pendek", CreateStudentRequest{Name: "طالب1", Password: "12345"}},
		{"telepon bukan angka", CreateStudentRequest{Name: "طالب1", Password: "123456", Phone: strPtr("abc")}},
		{"telepon terlalu pendek", CreateStudentRequest{Name: "طالب1", Password: "123456", Phone: strPtr("12")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			fe, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}

func TestValidateAcceptsTwoRuneArabicName(t *testing.T) {
	// dua huruf Arab = 4 byte tapi tetap valid, hitungannya per rune
	req := CreateStudentRequest{Name: "عل", Password: "123456"}
	assert.NoError(t, req.Validate())
}
