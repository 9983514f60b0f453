// Package storage defines the collection interfaces the handlers depend on.
// The interfaces allow swapping backends (MongoDB in production, in-memory in
// tests) without changing the handler layer.
package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// AddTeam and RemoveTeam maintain the user-side half of the
	// bidirectional membership relation.
	AddTeam(ctx context.Context, userID, teamID primitive.ObjectID) error
	RemoveTeam(ctx context.Context, userID, teamID primitive.ObjectID) error
}

type TeamStore interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	ListTeamsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id primitive.ObjectID, patch models.TeamPatch) (*models.Team, error)
	SetTeamMembers(ctx context.Context, id primitive.ObjectID, members []models.TeamMember) (*models.Team, error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id primitive.ObjectID) (*models.Expense, error)

	// ListExpensesForUser returns the user's expenses sorted by date
	// descending.
	ListExpensesForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error)
	ReplaceExpense(ctx context.Context, id primitive.ObjectID, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id primitive.ObjectID) error
}

// DocumentFilter is a conjunction of optional predicates over a relaxed
// expense collection. Zero values mean "no constraint". Predicates match the
// canonical lowercase keys only.
type DocumentFilter struct {
	TeamID   string
	UserID   string
	Status   string
	Category string
	Start    *time.Time
	End      *time.Time
}

// DocumentStore is a schema-less expense collection. Documents keep whatever
// keys they were stored with; callers normalize on read.
type DocumentStore interface {
	Insert(ctx context.Context, doc bson.M) (bson.M, error)
	All(ctx context.Context) ([]bson.M, error)

	// Page returns one page of matching documents sorted by date descending
	// plus the total match count. The count is a second, independent read.
	Page(ctx context.Context, filter DocumentFilter, page, limit int64) ([]bson.M, int64, error)

	// Update $set-merges patch into the document and returns the result.
	Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (bson.M, error)

	// Delete removes the document and returns it.
	Delete(ctx context.Context, id primitive.ObjectID) (bson.M, error)
}

// Store aggregates every collection handle the handlers need.
// Implementations must be safe for concurrent use.
type Store interface {
	Users() UserStore
	Teams() TeamStore
	Expenses() ExpenseStore
	PersonalExpenses() DocumentStore
	TeamExpenses() DocumentStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
