// Package apperror defines errors that carry the HTTP status they map to.
package apperror

import (
	"fmt"
	"net/http"
)

// APIError is a client-facing error rendered into the error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with the given status and message.
func New(statusCode int, message string, errs ...string) *APIError {
	if errs == nil {
		errs = []string{}
	}
	return &APIError{StatusCode: statusCode, Message: message, Errors: errs}
}

func BadRequest(message string, errs ...string) *APIError {
	return New(http.StatusBadRequest, message, errs...)
}

func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

func Internal(message string) *APIError {
	return New(http.StatusInternalServerError, message)
}

func NewErrAllFieldsRequired() *APIError {
	return BadRequest("All fields are required")
}

func NewErrInvalidRequestBody(err error) *APIError {
	return BadRequest("Invalid request body", err.Error())
}

func NewErrInvalidID(name string) *APIError {
	return BadRequest(fmt.Sprintf("Invalid %s", name))
}

func NewErrInvalidStatus() *APIError {
	return BadRequest("Invalid status value")
}

func NewErrUserExists() *APIError {
	return Conflict("User with this email or username already exists")
}

func NewErrEmailIsTaken(email string) *APIError {
	return Conflict(fmt.Sprintf("Email %s is already taken", email))
}

func NewErrUserNotFound() *APIError {
	return NotFound("User not found")
}

func NewErrProjectNotFound() *APIError {
	return NotFound("Project not found")
}

func NewErrTaskNotFound() *APIError {
	return NotFound("Task not found")
}

func NewErrAssigneeNotFound() *APIError {
	return NotFound("Assigned user not found")
}

func NewErrMissingAuthorizationToken() *APIError {
	return Unauthorized("Unauthorized request")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return Unauthorized("Invalid access token")
}

func NewErrInvalidRefreshToken() *APIError {
	return Unauthorized("Invalid refresh token")
}

func NewErrIncorrectPassword() *APIError {
	return Unauthorized("Password is incorrect")
}

// NewErrNotProjectMember is returned when the caller is not a member of the
// project the action targets.
func NewErrNotProjectMember(action string) *APIError {
	return Forbidden(fmt.Sprintf("You don't have permission to %s", action))
}
