package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest        ErrorCode = "bad_request"
	errCodeNotFound          ErrorCode = "not_found"
	errCodeBlacklisted       ErrorCode = "blacklisted"
	errCodeAlreadyInProgress ErrorCode = "already_in_progress"

	// Server errors (5xx)
	errCodeInternalError     ErrorCode = "internal_error"
	errCodeQuotaExceeded     ErrorCode = "quota_exceeded"
	errCodeMirrorFailure     ErrorCode = "mirror_failure"
	errCodeLedgerUnavailable ErrorCode = "ledger_unavailable"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err, zap.String("path", c.Request.URL.Path))
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondFetchError maps a classified fetch failure to an HTTP status.
// Every rejection carries its stable kind as the error code so callers
// can react without parsing messages.
func respondFetchError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		respondBadRequest(c, "Invalid fetch request", err.Error())
	case domain.KindAlreadyInProgress:
		respondWithError(c, http.StatusConflict, errCodeAlreadyInProgress, "A fetch for this item is already in progress", err.Error())
	case domain.KindBlacklisted:
		respondWithError(c, http.StatusForbidden, errCodeBlacklisted, "This item is blacklisted", err.Error())
	case domain.KindQuotaExceeded:
		respondWithError(c, http.StatusInsufficientStorage, errCodeQuotaExceeded, "Storage quota exceeded", err.Error())
	case domain.KindNotFound:
		respondWithError(c, http.StatusNotFound, errCodeNotFound, "Item not found on any mirror", err.Error())
	case domain.KindNetwork, domain.KindStructural:
		respondWithError(c, http.StatusBadGateway, errCodeMirrorFailure, "All mirrors failed", err.Error())
	case domain.KindLedgerUnavailable:
		respondWithError(c, http.StatusServiceUnavailable, errCodeLedgerUnavailable, "Provenance ledger unavailable", err.Error())
	default:
		respondInternalError(c, err, "Fetch failed")
	}
}
