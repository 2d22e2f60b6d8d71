package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/middleware"
	"nexus-project-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses.
// The error is attached to the context so the request logger records it.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	// Check for GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	// Check for custom AppError
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		message := appErr.Message
		if appErr.Code == response.ErrCodeForbidden && appErr.Details != "" {
			message = appErr.Message + ": " + appErr.Details
		}
		if statusCode == http.StatusInternalServerError {
			message = "Internal server error"
		}
		response.SendError(c, statusCode, appErr.Code, message)
		return
	}

	// Default to internal server error
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists, response.ErrCodeConflict:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// getUserID returns the authenticated user or writes a 401
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter or writes a 400
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindError writes the binding failure as a validation error
func bindError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body: "+err.Error())
}
