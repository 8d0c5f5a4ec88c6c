package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionExamsRead allows viewing exam lists and details.
	PermissionExamsRead Permission = "exams:read"

	// PermissionExamsWrite allows creating, updating, and deleting exams.
	PermissionExamsWrite Permission = "exams:write"

	// PermissionExamsActivate allows activating exams for students.
	PermissionExamsActivate Permission = "exams:activate"

	// PermissionQuestionsWrite allows managing questions of an exam.
	PermissionQuestionsWrite Permission = "questions:write"

	// PermissionStudentsRead allows viewing student profiles.
	PermissionStudentsRead Permission = "students:read"

	// PermissionStudentsWrite allows creating and updating student profiles.
	PermissionStudentsWrite Permission = "students:write"

	// PermissionProctoringRead allows viewing proctoring sessions and violations.
	PermissionProctoringRead Permission = "proctoring:read"

	// PermissionBillingRead allows viewing payment transactions.
	PermissionBillingRead Permission = "billing:read"

	// PermissionBillingWrite allows advancing payment transactions.
	PermissionBillingWrite Permission = "billing:write"

	// PermissionAdminsRead allows viewing admin user lists and details.
	PermissionAdminsRead Permission = "admins:read"

	// PermissionAdminsWrite allows creating, updating, and deleting admin users.
	PermissionAdminsWrite Permission = "admins:write"

	// PermissionRolesRead allows viewing admin roles and permissions.
	PermissionRolesRead Permission = "roles:read"

	// PermissionRolesWrite allows creating, updating, and deleting admin roles.
	PermissionRolesWrite Permission = "roles:write"

	// PermissionSettingsRead allows viewing application settings.
	PermissionSettingsRead Permission = "settings:read"

	// PermissionSettingsWrite allows editing application settings.
	PermissionSettingsWrite Permission = "settings:write"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionExamsRead,
	PermissionExamsWrite,
	PermissionExamsActivate,
	PermissionQuestionsWrite,
	PermissionStudentsRead,
	PermissionStudentsWrite,
	PermissionProctoringRead,
	PermissionBillingRead,
	PermissionBillingWrite,
	PermissionAdminsRead,
	PermissionAdminsWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
	PermissionSettingsRead,
	PermissionSettingsWrite,
}
