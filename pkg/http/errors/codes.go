package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeMissingField   = "missing_field"
	ErrCodeInvalidScore   = "invalid_score"

	// Resource errors
	ErrCodeNotFound       = "not_found"
	ErrCodeCourseNotFound = "course_not_found"
	ErrCodeSessionNotFound = "session_not_found"

	// Business logic errors
	ErrCodeSubmitFailed       = "submit_failed"
	ErrCodeProfileFetchFailed = "profile_fetch_failed"
	ErrCodeProfileDeleteFailed = "profile_delete_failed"

	// Leaderboard errors
	ErrCodeLeaderboardFetchFailed = "leaderboard_fetch_failed"
	ErrCodeUnknownStrategy        = "unknown_sort_strategy"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
	ErrCodeServiceUnavailable = "service_unavailable"
)
