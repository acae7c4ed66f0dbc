// Package response writes the JSON envelope shared by every endpoint:
// {"success": true, "data": ...} on success and
// {"success": false, "error": "...", "errors": [...]} on failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/validation"
)

// SuccessResponse is the body of a successful call.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the body of a failed call.
type ErrorResponse struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// NoContent writes an empty 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes a failure envelope and aborts the handler chain.
func Fail(c *gin.Context, status int, message string, fields []validation.FieldError) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message, Errors: fields})
}
