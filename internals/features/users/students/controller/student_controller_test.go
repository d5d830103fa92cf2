// internals/features/users/students/controller/student_controller_test.go
package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Payload yang gagal validasi harus ditolak 400 sebelum menyentuh DB,
// jadi controller di sini sengaja dibuat tanpa koneksi.
func TestCreateRejectsInvalidPayloadBeforeDB(t *testing.T) {
	app := fiber.New()
	ctrl := NewStudentController(nil)
	app.Post("/students", ctrl.Create)

	cases := []struct {
		name string
		body string
	}{
		{"kosong", `{}`},
		{"tanpa password", `{"name":"أحمد"}`},
		{"tanpa nama", `{"password":"123456"}`},
		{"nama hanya spasi", `{"name":"   ","password":"123456"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/students", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}
