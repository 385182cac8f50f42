package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const textContentType = "text/plain; charset=utf-8"

// wantsText reports whether the caller asked for the plain-text rendering.
func wantsText(c *gin.Context) bool {
	return strings.EqualFold(c.Query("format"), "text")
}
