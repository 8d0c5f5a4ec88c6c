package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Exam / attempt ────────────────────────────────────────────────
	ErrExamNotActive       ErrCode = "EXAM_NOT_ACTIVE"
	ErrExamNotDraft        ErrCode = "EXAM_NOT_DRAFT"
	ErrInvalidExamRef      ErrCode = "INVALID_EXAM_REFERENCE"
	ErrNoQuestions         ErrCode = "NO_QUESTIONS"
	ErrAnswerNotInOptions  ErrCode = "ANSWER_NOT_IN_OPTIONS"
	ErrPercentageOutOfRange ErrCode = "PERCENTAGE_OUT_OF_RANGE"

	// ─── Proctoring ────────────────────────────────────────────────────
	ErrSessionExists    ErrCode = "PROCTORING_SESSION_EXISTS"
	ErrSessionNotActive ErrCode = "PROCTORING_SESSION_NOT_ACTIVE"

	// ─── Billing ───────────────────────────────────────────────────────
	ErrDuplicateTransaction ErrCode = "DUPLICATE_TRANSACTION"
	ErrInvalidTransition    ErrCode = "INVALID_STATUS_TRANSITION"

	// ─── AI gateway ────────────────────────────────────────────────────
	ErrUpstreamAI ErrCode = "UPSTREAM_AI_ERROR"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "Cannot delete because other data still depends on this record."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Exam / attempt ────────────────────────────────────────────────
	case ErrExamNotActive:
		return "This exam is not currently active."
	case ErrExamNotDraft:
		return "This exam is not in DRAFT status."
	case ErrInvalidExamRef:
		return "The referenced exam does not exist."
	case ErrNoQuestions:
		return "This exam has no questions."
	case ErrAnswerNotInOptions:
		return "The correct answer must be one of the provided options."
	case ErrPercentageOutOfRange:
		return "Percentage must be between 0 and 100."

	// ─── Proctoring ────────────────────────────────────────────────────
	case ErrSessionExists:
		return "A proctoring session with this ID already exists."
	case ErrSessionNotActive:
		return "The proctoring session is not active."

	// ─── Billing ───────────────────────────────────────────────────────
	case ErrDuplicateTransaction:
		return "A transaction with this ID has already been recorded."
	case ErrInvalidTransition:
		return "The requested payment status transition is not allowed."

	// ─── AI gateway ────────────────────────────────────────────────────
	case ErrUpstreamAI:
		return "The AI provider returned an error."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
