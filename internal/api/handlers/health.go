package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health verifies the storage connection.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "MongoDB is not connected",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "MongoDB is connected",
	})
}
