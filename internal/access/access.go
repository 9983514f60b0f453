// Package access holds the ownership and role checks that gate mutations.
// Handlers check existence first (404), then these guards (401), so the two
// failure paths stay distinguishable only by status code.
package access

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/models"
)

// CanModify reports whether userID is an admin-role member of team.
// Member-role members and non-members cannot modify a team.
func CanModify(team *models.Team, userID primitive.ObjectID) bool {
	if team == nil {
		return false
	}
	for _, m := range team.Members {
		if m.User == userID && m.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}

// IsOwner reports whether userID created the expense.
func IsOwner(expense *models.Expense, userID primitive.ObjectID) bool {
	return expense != nil && expense.User == userID
}
