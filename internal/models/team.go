package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team role constants.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TeamMember is one entry in a team's membership set. A user appears at most
// once per team.
type TeamMember struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role string             `bson:"role" json:"role"`
}

type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Budget      float64            `bson:"budget" json:"budget"`
	Members     []TeamMember       `bson:"members" json:"members"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasMember reports whether userID already appears in the membership set,
// regardless of role.
func (t *Team) HasMember(userID primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m.User == userID {
			return true
		}
	}
	return false
}

// TeamPatch lists the mutable team fields for a partial update. Nil fields
// are left untouched.
type TeamPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}
