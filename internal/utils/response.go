package utils

import (
	"github.com/gin-gonic/gin"

	"legalvoice/internal/apperr"
)

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// ErrorFrom answers with the status apperr maps err to.
func ErrorFrom(c *gin.Context, err error) {
	Error(c, apperr.HTTPStatus(err), err.Error())
}
