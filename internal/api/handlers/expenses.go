package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/access"
	"spendly-api/internal/models"
	"spendly-api/internal/storage"
)

type expenseRequest struct {
	Title       string              `json:"title"`
	Amount      *float64            `json:"amount"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Date        *time.Time          `json:"date"`
	Team        *primitive.ObjectID `json:"team"`
	Receipt     string              `json:"receipt"`
	Tags        []string            `json:"tags"`
}

// validate enumerates every failing field, not just the first.
func (r *expenseRequest) validate() []gin.H {
	var errs []gin.H
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, gin.H{"msg": "Title is required", "param": "title"})
	}
	if r.Amount == nil {
		errs = append(errs, gin.H{"msg": "Amount is required", "param": "amount"})
	} else if *r.Amount < 0 {
		errs = append(errs, gin.H{"msg": "Amount cannot be negative", "param": "amount"})
	}
	if r.Category == "" {
		errs = append(errs, gin.H{"msg": "Category is required", "param": "category"})
	} else if !models.ValidCategory(r.Category) {
		errs = append(errs, gin.H{"msg": "Category is not valid", "param": "category"})
	}
	return errs
}

// validateExpense re-checks a merged expense after a partial update.
func validateExpense(e *models.Expense) []gin.H {
	var errs []gin.H
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, gin.H{"msg": "Title is required", "param": "title"})
	}
	if e.Amount < 0 {
		errs = append(errs, gin.H{"msg": "Amount cannot be negative", "param": "amount"})
	}
	if e.Category == "" {
		errs = append(errs, gin.H{"msg": "Category is required", "param": "category"})
	} else if !models.ValidCategory(e.Category) {
		errs = append(errs, gin.H{"msg": "Category is not valid", "param": "category"})
	}
	return errs
}

func (h *Handler) ListExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	expenses, err := h.store.Expenses().ListExpensesForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("expense list failed", "error", err, "user_id", userID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request expenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Invalid request body"}}})
		return
	}
	if errs := request.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	expense := &models.Expense{
		Title:       request.Title,
		Amount:      *request.Amount,
		Description: request.Description,
		Category:    request.Category,
		User:        userID,
		Team:        request.Team,
		Receipt:     request.Receipt,
		Tags:        request.Tags,
	}
	if request.Date != nil {
		expense.Date = *request.Date
	}

	if err := h.store.Expenses().CreateExpense(c.Request.Context(), expense); err != nil {
		slog.Error("expense create failed", "error", err, "user_id", userID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
		return
	}

	ctx := c.Request.Context()

	// Existence before authorization, so the two failures stay distinct.
	expense, err := h.store.Expenses().GetExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !access.IsOwner(expense, userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	var patch models.ExpensePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Invalid request body"}}})
		return
	}

	merged := patch.Apply(*expense)
	if errs := validateExpense(&merged); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.store.Expenses().ReplaceExpense(ctx, id, &merged); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, merged)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
		return
	}

	ctx := c.Request.Context()

	expense, err := h.store.Expenses().GetExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !access.IsOwner(expense, userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	if err := h.store.Expenses().DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Expense removed"})
}
