package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document. Teams holds the id of every team the user
// belongs to, mirrored from Team.Members on join/leave.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	Teams     []primitive.ObjectID `bson:"teams" json:"teams"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
