package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONSuccess sends a response with the standard success envelope.
// A nil data value is omitted from the body.
func JSONSuccess(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// JSONFailure sends a response with the standard failure envelope.
func JSONFailure(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"status":  "failure",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
