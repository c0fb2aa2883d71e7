package types

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/pkg/errors"
)

// Handler utility functions shared across handlers

// SendValidationError sends the 400 body for a validation AppError.
func SendValidationError(c *gin.Context, err *errors.AppError) {
	fields := err.Fields
	if fields == nil {
		fields = []errors.FieldError{}
	}
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Errors:  fields,
		Message: err.Message,
	})
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, errMsg, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMsg, Message: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, errMsg, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errMsg, Message: message})
}

// SendNotFound sends the 404 body for an unknown path
func SendNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Status:  StatusError,
		Message: "The requested endpoint was not found",
		Path:    c.Request.URL.Path,
	})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
