package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense status values. An expense starts pending; approve and reject are
// terminal overwrites with no transition back to pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Categories accepted by the strict expense schema.
var Categories = []string{"Food", "Transportation", "Entertainment", "Shopping", "Bills", "Other"}

// ValidCategory reports whether c is one of the fixed expense categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Expense is the strict-schema expense document owned by a single user.
type Expense struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Amount      float64             `bson:"amount" json:"amount"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Category    string              `bson:"category" json:"category"`
	Date        time.Time           `bson:"date" json:"date"`
	User        primitive.ObjectID  `bson:"user" json:"user"`
	Team        *primitive.ObjectID `bson:"team,omitempty" json:"team,omitempty"`
	Status      string              `bson:"status" json:"status"`
	Receipt     string              `bson:"receipt,omitempty" json:"receipt,omitempty"`
	Tags        []string            `bson:"tags,omitempty" json:"tags,omitempty"`
}

// ExpensePatch lists the mutable expense fields for a partial update. Nil
// fields are left untouched; Tags replaces the whole set when present.
type ExpensePatch struct {
	Title       *string             `json:"title"`
	Amount      *float64            `json:"amount"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	Date        *time.Time          `json:"date"`
	Team        *primitive.ObjectID `json:"team"`
	Status      *string             `json:"status"`
	Receipt     *string             `json:"receipt"`
	Tags        []string            `json:"tags"`
}

// Apply merges the patch into a copy of e and returns the result.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Team != nil {
		e.Team = p.Team
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Receipt != nil {
		e.Receipt = *p.Receipt
	}
	if p.Tags != nil {
		e.Tags = p.Tags
	}
	return e
}
