package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

type errorMapping struct {
	err     error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order, so specific sentinels come before the
// generic ones they may also wrap.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrAccountBlocked, http.StatusForbidden, dto.ErrorCodeAccountBlocked, "Account is blocked"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountBlocked, "Account is disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password"},
	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email"},
	{apperrors.ErrUnknownPermission, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown permission"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
	{apperrors.ErrUnsupportedFileType, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unsupported file type"},
	{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeValidationFailed, "File too large"},

	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrAlreadyBooked, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already booked"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrCancellationPending, http.StatusConflict, dto.ErrorCodeConflict, "Cancellation already pending"},
	{apperrors.ErrAlreadyReviewed, http.StatusConflict, dto.ErrorCodeConflict, "Already reviewed"},
	{apperrors.ErrRoleInUse, http.StatusConflict, dto.ErrorCodeConflict, "Role in use"},
	{apperrors.ErrSystemRole, http.StatusConflict, dto.ErrorCodeConflict, "System role"},
	{apperrors.ErrResourceInUse, http.StatusConflict, dto.ErrorCodeConflict, "Resource in use"},
	{apperrors.ErrInvalidStatus, http.StatusConflict, dto.ErrorCodeConflict, "Invalid status"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrInsufficientCredit, http.StatusUnprocessableEntity, dto.ErrorCodeInsufficientCredit, "Insufficient credit"},
	{apperrors.ErrPAQNotApproved, http.StatusUnprocessableEntity, dto.ErrorCodePAQRequired, "Questionnaire required"},
	{apperrors.ErrMedicalClearanceRequired, http.StatusUnprocessableEntity, dto.ErrorCodePAQRequired, "Medical clearance required"},
	{apperrors.ErrClassFull, http.StatusUnprocessableEntity, dto.ErrorCodeCapacityReached, "Class is full"},
	{apperrors.ErrEnrollmentClosed, http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule, "Enrollment closed"},
	{apperrors.ErrClassUnavailable, http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule, "Class unavailable"},
	{apperrors.ErrNoUpcomingSessions, http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule, "No upcoming sessions"},
	{apperrors.ErrCancellationTooLate, http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule, "Too late to cancel"},
	{apperrors.ErrPaymentNotConfirmed, http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule, "Payment not confirmed"},

	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrRoleNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Role not found"},
	{apperrors.ErrCustomerNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Customer not found"},
	{apperrors.ErrVenueNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Venue not found"},
	{apperrors.ErrInstructorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Instructor not found"},
	{apperrors.ErrTermNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Term not found"},
	{apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Class not found"},
	{apperrors.ErrSessionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Session not found"},
	{apperrors.ErrEnquiryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enquiry not found"},
	{apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "File not found"},
	{apperrors.ErrEnrollmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found"},
	{apperrors.ErrBookingNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Booking not found"},
	{apperrors.ErrPaymentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Payment not found"},
	{apperrors.ErrPAQNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Questionnaire not found"},
	{apperrors.ErrCancellationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Cancellation not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "External service error"},
}

// HandleAPIError writes the error envelope for err. The error text is kept
// verbatim in details; unknown errors are logged and hidden.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			detail := dto.NewErrorDetail(m.code, m.message).WithDetails(err.Error())
			c.JSON(m.status, dto.NewErrorResponse(detail))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}

// HandleBindError writes a VAL_001 envelope for a failed request binding
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
