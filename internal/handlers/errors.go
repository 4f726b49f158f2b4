package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/services"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError renders a service or backend failure as the inline
// message of the view. The view's current state is never touched.
func respondServiceError(c *gin.Context, err error) {
	respondError(c, statusFor(err), messageFor(err), err)
}

func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrConflict),
		errors.Is(err, connection.ErrSendInFlight),
		errors.Is(err, connection.ErrDecisionInFlight):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, crud.ErrNotSupported):
		return http.StatusMethodNotAllowed
	case apperrors.Is(err, apperrors.ErrNetwork), apperrors.Is(err, apperrors.ErrServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, connection.ErrAlreadySent):
		return "Connection request already sent."
	case errors.Is(err, connection.ErrSendInFlight), errors.Is(err, connection.ErrDecisionInFlight):
		return "Already processing. Please wait."
	case errors.Is(err, services.ErrNotOwner):
		return "You can only change your own data."
	default:
		return apperrors.UserMessage(err)
	}
}

// paramID reads a positive integer path parameter. On failure the 400
// response is already written.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter, zero when absent
func queryID(c *gin.Context, name string) int {
	id, err := strconv.Atoi(c.Query(name))
	if err != nil || id < 0 {
		return 0
	}
	return id
}
