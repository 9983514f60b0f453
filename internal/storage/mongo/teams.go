package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spendly-api/internal/models"
	"spendly-api/internal/storage"
)

type teamStore struct {
	col *mongo.Collection
}

func (s *teamStore) CreateTeam(ctx context.Context, team *models.Team) error {
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, team)
	return err
}

func (s *teamStore) GetTeam(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *teamStore) ListTeamsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	cursor, err := s.col.Find(ctx, bson.M{"members.user": userID})
	if err != nil {
		return nil, err
	}
	teams := []models.Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *teamStore) UpdateTeam(ctx context.Context, id primitive.ObjectID, patch models.TeamPatch) (*models.Team, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Budget != nil {
		set["budget"] = *patch.Budget
	}
	if len(set) == 0 {
		return s.GetTeam(ctx, id)
	}
	return s.findOneAndSet(ctx, id, set)
}

func (s *teamStore) SetTeamMembers(ctx context.Context, id primitive.ObjectID, members []models.TeamMember) (*models.Team, error) {
	return s.findOneAndSet(ctx, id, bson.M{"members": members})
}

func (s *teamStore) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Team, error) {
	var team models.Team
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}
