package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrResourceInUse         = errors.New("resource is referenced by other records")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountBlocked     = errors.New("account is blocked")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	ErrExternalService = errors.New("external service error")
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleInUse          = errors.New("role is assigned to users and cannot be deleted")
	ErrSystemRole         = errors.New("system role cannot be modified")
	ErrUnknownPermission  = errors.New("unknown permission")
)

// Catalogue errors
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrTermNotFound       = errors.New("term not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrEnquiryNotFound    = errors.New("enquiry not found")
	ErrFileNotFound       = errors.New("file not found")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrEnrollmentClosed    = errors.New("term is not open for enrollment")
	ErrClassFull           = errors.New("class is full")
	ErrClassUnavailable    = errors.New("class is not available for enrollment")
	ErrNoUpcomingSessions  = errors.New("class has no upcoming sessions")
	ErrAlreadyBooked       = errors.New("customer is already booked into this session")
	ErrPAQNotApproved      = errors.New("an approved pre-activity questionnaire is required")
	ErrInsufficientCredit  = errors.New("insufficient credit")
	ErrInvalidStatus       = errors.New("operation not allowed in the current status")
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed")
)

// PAQ and cancellation errors
var (
	ErrPAQNotFound              = errors.New("questionnaire not found")
	ErrMedicalClearanceRequired = errors.New("medical clearance certificate is required")
	ErrUnsupportedFileType      = errors.New("unsupported file type")
	ErrFileTooLarge             = errors.New("file too large")
	ErrCancellationNotFound     = errors.New("cancellation not found")
	ErrCancellationPending      = errors.New("a cancellation request is already pending for this booking")
	ErrCancellationTooLate      = errors.New("cancellation notice period has passed")
	ErrAlreadyReviewed          = errors.New("request has already been reviewed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
