package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the success payload, keyed by entity name ({user}, {categories}, ...).
type Response map[string]interface{}

// Error codes in the error envelope.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// OK writes a 200 with the payload as-is.
func OK(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 with the payload as-is.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, data)
}

// Error writes the error envelope: {"error": {"message": ..., "code": ...}}.
func Error(c *gin.Context, httpStatus int, code, msg string) {
	c.JSON(httpStatus, gin.H{
		"error": gin.H{
			"message": msg,
			"code":    code,
		},
	})
}
