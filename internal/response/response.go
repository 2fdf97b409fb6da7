package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/storage/storeerr"
)

// Response is the standard success envelope
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a success envelope
func SuccessResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListResponse sends a success envelope with the number of items returned
func ListResponse[T any](c *gin.Context, items []T) {
	count := len(items)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    items,
		Count:   &count,
	})
}

// ErrorResponseWithMessage sends an error envelope with a custom message
func ErrorResponseWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    status,
	})
}

// BadRequestError sends a 400
func BadRequestError(c *gin.Context, message string, details ...error) {
	resp := ErrorResponse{
		Success: false,
		Error:   message,
		Code:    http.StatusBadRequest,
	}
	if err := errors.Join(details...); err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// NotFoundError sends a 404
func NotFoundError(c *gin.Context, message string) {
	ErrorResponseWithMessage(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500
func InternalServerError(c *gin.Context, message string) {
	ErrorResponseWithMessage(c, http.StatusInternalServerError, message)
}

// ConflictError sends a 409
func ConflictError(c *gin.Context, message string) {
	ErrorResponseWithMessage(c, http.StatusConflict, message)
}

// StoreError classifies a store failure and sends the matching status with
// the underlying detail. It returns the status written.
func StoreError(c *gin.Context, message string, err error) int {
	classified := storeerr.Classify(err)
	kind := storeerr.Internal
	details := ""
	if classified != nil {
		kind = classified.Kind
		details = classified.Error()
	}

	status := storeerr.HTTPStatus(kind)
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    status,
		Kind:    kind.String(),
		Details: details,
	})
	return status
}
