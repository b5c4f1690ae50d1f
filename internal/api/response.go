package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response uniform success envelope.
// @Description Uniform response envelope with code, message and data
type Response struct {
	Code    int         `json:"code" example:"0"` // 0 on success
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse uniform error envelope. Errors carries the full rule list
// of a validation failure so the form can highlight every problem at once.
// @Description Uniform error envelope
type ErrorResponse struct {
	Code    int      `json:"code" example:"400"`
	Message string   `json:"message" example:"invalid request"`
	Detail  string   `json:"detail,omitempty" example:"validation failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Success writes a success response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response.
func Error(c *gin.Context, code int, message string, detail string) {
	statusCode := http.StatusInternalServerError
	if code >= 400 && code < 600 {
		statusCode = code
	}

	c.JSON(statusCode, ErrorResponse{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// ValidationFailed writes a 422 carrying every violated rule.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: "validation failed",
		Errors:  errs,
	})
}
