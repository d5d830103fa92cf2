package service

import (
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tahfidz_backend/internals/constants"
	studentTaskModel "tahfidz_backend/internals/features/studenttasks/model"
)

func TestCompleteWithoutExplicitTimeUsesNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	st := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}

	late := ApplyStatusChange(&st, constants.StatusCompleted, nil, nil, now)

	assert.False(t, late)
	assert.Equal(t, constants.StatusCompleted, st.StudentTaskStatus)
	require.NotNil(t, st.StudentTaskSubmittedAt)
	assert.Equal(t, now, *st.StudentTaskSubmittedAt)
}

func TestCompleteWithExplicitTimeKeepsIt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	explicit := now.Add(-2 * time.Hour)
	st := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}

	ApplyStatusChange(&st, constants.StatusCompleted, &explicit, nil, now)

	require.NotNil(t, st.StudentTaskSubmittedAt)
	assert.Equal(t, explicit, *st.StudentTaskSubmittedAt)
}

func TestBackToPendingClearsSubmittedAt(t *testing.T) {
	now := time.Now()
	st := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}

	ApplyStatusChange(&st, constants.StatusCompleted, nil, nil, now)
	require.NotNil(t, st.StudentTaskSubmittedAt)

	ApplyStatusChange(&st, constants.StatusPending, nil, nil, now.Add(time.Minute))

	assert.Equal(t, constants.StatusPending, st.StudentTaskStatus)
	assert.Nil(t, st.StudentTaskSubmittedAt)
}

func TestLateFlagWhenPastDeadline(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}

	late := ApplyStatusChange(&st, constants.StatusCompleted, nil, &deadline, deadline.Add(time.Hour))
	assert.True(t, late)

	st2 := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}
	late = ApplyStatusChange(&st2, constants.StatusCompleted, nil, &deadline, deadline.Add(-time.Hour))
	assert.False(t, late)
}

func TestTransitionsAreBidirectional(t *testing.T) {
	now := time.Now()
	st := studentTaskModel.StudentTaskModel{StudentTaskStatus: constants.StatusPending}

	for i := 0; i < 3; i++ {
		ApplyStatusChange(&st, constants.StatusCompleted, nil, nil, now)
		assert.Equal(t, constants.StatusCompleted, st.StudentTaskStatus)
		ApplyStatusChange(&st, constants.StatusPending, nil, nil, now)
		assert.Equal(t, constants.StatusPending, st.StudentTaskStatus)
	}
}

func TestValidateStatus(t *testing.T) {
	assert.NoError(t, ValidateStatus("pending"))
	assert.NoError(t, ValidateStatus("completed"))

	err := ValidateStatus("done")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestValidateNoteCap(t *testing.T) {
	assert.NoError(t, ValidateNote(strings.Repeat("а", constants.MaxNoteLength)))
	// 1000 huruf Arab = 1000 rune walau multi-byte
	assert.NoError(t, ValidateNote(strings.Repeat("ب", constants.MaxNoteLength)))

	err := ValidateNote(strings.Repeat("ب", constants.MaxNoteLength+1))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestComputeProgress(t *testing.T) {
	stats := ComputeProgress(nil)
	assert.Equal(t, ProgressStats{}, stats)

	stats = ComputeProgress([]string{"completed", "pending", "completed"})
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 1, stats.PendingTasks)
	assert.Equal(t, 67, stats.CompletionRate) // round(2/3*100)
}
