// Package service memuat logika inti student_tasks sebagai fungsi murni
// di atas nilai, terpisah dari Fiber/GORM supaya bisa diuji langsung.
package service

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/constants"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
)

// ApplyStatusChange menerapkan transisi pending ↔ completed pada record.
//   - → completed: submitted_at = nilai eksplisit, atau now bila kosong;
//     bila deadline ada dan sudah lewat, kembalikan late=true (dipromosikan
//     ke kontrak respons, bukan cuma log).
//   - → pending: submitted_at dikosongkan tanpa syarat.
//
// Tidak ada state terminal; kedua arah selalu diizinkan.
func ApplyStatusChange(st *studentTaskModel.StudentTaskModel, status string, submittedAt *time.Time, deadline *time.Time, now time.Time) (late bool) {
	switch status {
	case constants.StatusCompleted:
		t := now
		if submittedAt != nil {
			t = *submittedAt
		}
		st.StudentTaskStatus = constants.StatusCompleted
		st.StudentTaskSubmittedAt = &t
		if deadline != nil && now.After(*deadline) {
			late = true
		}
	case constants.StatusPending:
		st.StudentTaskStatus = constants.StatusPending
		st.StudentTaskSubmittedAt = nil
	}
	return late
}

// ValidateStatus menolak nilai di luar pending|completed.
func ValidateStatus(status string) error {
	if !constants.IsValidStatus(status) {
		return fiber.NewError(fiber.StatusBadRequest,
			"الحالة غير صالحة. يجب أن تكون 'pending' أو 'completed'")
	}
	return nil
}

// ValidateNote membatasi panjang catatan (guru maupun siswa) 1000 karakter.
func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > constants.MaxNoteLength {
		return fiber.NewError(fiber.StatusBadRequest, "الملاحظة طويلة جداً (أقصى 1000 حرف)")
	}
	return nil
}

// ProgressStats adalah agregat untuk GET /student/progress.
type ProgressStats struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	CompletionRate int `json:"completion_rate"` // persen, dibulatkan
}

func ComputeProgress(statuses []string) ProgressStats {
	stats := ProgressStats{TotalTasks: len(statuses)}
	for _, s := range statuses {
		if s == constants.StatusCompleted {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100))
	}
	return stats
}
