package constants

// Role pengguna (closed enum: hanya dua role di sistem ini)
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Status student_task (dua state, bolak-balik bebas)
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

var AllRoles = []string{RoleTeacher, RoleStudent}

var AllStatuses = []string{StatusPending, StatusCompleted}

func IsValidRole(role string) bool {
	return role == RoleTeacher || role == RoleStudent
}

func IsValidStatus(status string) bool {
	return status == StatusPending || status == StatusCompleted
}
