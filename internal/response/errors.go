package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidID      ErrCode = "INVALID_ID"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrMalformedSession  ErrCode = "MALFORMED_SESSION"
	ErrSelfOverlap       ErrCode = "SELF_OVERLAP"
	ErrInstructorClash   ErrCode = "INSTRUCTOR_CONFLICT"
	ErrCohortClash       ErrCode = "STUDENT_COHORT_CONFLICT"
	ErrScheduleConflict  ErrCode = "SCHEDULE_CONFLICT"
	ErrPersistenceFailed ErrCode = "PERSISTENCE_FAILED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrInvalidID:
		return "The identifier format is invalid."
	case ErrMalformedSession:
		return "One or more sessions are malformed."
	case ErrSelfOverlap:
		return "The submitted sessions overlap each other."
	case ErrInstructorClash:
		return "The instructor is already booked at that time."
	case ErrCohortClash:
		return "The program cohort already has a class at that time."
	case ErrScheduleConflict:
		return "The class conflicts with the committed schedule."
	case ErrPersistenceFailed:
		return "The schedule passed validation but could not be saved. Please retry."
	case ErrNotFound:
		return "The resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
