package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly-api/internal/models"
	"spendly-api/internal/storage"
)

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Teams == nil {
		user.Teams = []primitive.ObjectID{}
	}
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *userStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) AddTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"teams": teamID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *userStore) RemoveTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"teams": teamID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
