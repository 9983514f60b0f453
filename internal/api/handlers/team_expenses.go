package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/normalize"
	"spendly-api/internal/storage"
)

func (h *Handler) ListTeamExpenses(c *gin.Context) {
	filter := storage.DocumentFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if s := c.Query("startDate"); s != "" {
		if t, ok := parseDate(s); ok {
			filter.Start = &t
		}
	}
	if s := c.Query("endDate"); s != "" {
		if t, ok := parseDate(s); ok {
			filter.End = &t
		}
	}
	h.pageTeamExpenses(c, filter)
}

func (h *Handler) ListTeamExpensesByTeam(c *gin.Context) {
	filter := storage.DocumentFilter{
		TeamID:   c.Param("teamId"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	h.pageTeamExpenses(c, filter)
}

func (h *Handler) pageTeamExpenses(c *gin.Context, filter storage.DocumentFilter) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	docs, count, err := h.store.TeamExpenses().Page(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch expenses",
			"details": err.Error(),
		})
		return
	}

	expenses := make([]normalize.Record, 0, len(docs))
	for _, doc := range docs {
		expenses = append(expenses, normalize.Normalize(doc))
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":      expenses,
		"totalPages":    (count + limit - 1) / limit,
		"currentPage":   page,
		"totalExpenses": count,
	})
}

func (h *Handler) CreateTeamExpense(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create expense",
			"details": err.Error(),
		})
		return
	}
	coerceDates(doc)

	saved, err := h.store.TeamExpenses().Insert(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create expense",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, normalize.Normalize(saved))
}

func (h *Handler) UpdateTeamExpense(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	var patch bson.M
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to update expense",
			"details": err.Error(),
		})
		return
	}
	// The id is immutable.
	delete(patch, "_id")
	delete(patch, "id")
	coerceDates(patch)

	doc, err := h.store.TeamExpenses().Update(c.Request.Context(), id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to update expense",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, normalize.Normalize(doc))
}

func (h *Handler) DeleteTeamExpense(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	doc, err := h.store.TeamExpenses().Delete(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to delete expense",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Expense deleted successfully",
		"deletedExpense": normalize.Normalize(doc),
	})
}

func queryInt(c *gin.Context, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
