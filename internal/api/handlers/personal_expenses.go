package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/models"
	"spendly-api/internal/normalize"
	"spendly-api/internal/storage"
)

func (h *Handler) ListPersonalExpenses(c *gin.Context) {
	docs, err := h.store.PersonalExpenses().All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	expenses := make([]normalize.Record, 0, len(docs))
	for _, doc := range docs {
		expenses = append(expenses, normalize.Normalize(doc))
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *Handler) CreatePersonalExpense(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to create expense",
			"details": err.Error(),
		})
		return
	}
	coerceDates(doc)

	saved, err := h.store.PersonalExpenses().Insert(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to create expense",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Expense successfully added",
		"expense": normalize.Normalize(saved),
	})
}

func (h *Handler) ApprovePersonalExpense(c *gin.Context) {
	h.setPersonalStatus(c, models.StatusApproved)
}

func (h *Handler) RejectPersonalExpense(c *gin.Context) {
	h.setPersonalStatus(c, models.StatusRejected)
}

// setPersonalStatus overwrites both the legacy and canonical status keys so
// re-application stays idempotent across either document shape.
func (h *Handler) setPersonalStatus(c *gin.Context, status string) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Expense not found"})
		return
	}

	doc, err := h.store.PersonalExpenses().Update(c.Request.Context(), id, bson.M{
		"Status": status,
		"status": status,
	})
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Expense not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "expense": normalize.Normalize(doc)})
}
