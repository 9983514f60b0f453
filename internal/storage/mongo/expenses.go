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

type expenseStore struct {
	col *mongo.Collection
}

func (s *expenseStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID.IsZero() {
		expense.ID = primitive.NewObjectID()
	}
	// Schema defaults: date falls back to creation time, status to pending.
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	if expense.Status == "" {
		expense.Status = models.StatusPending
	}
	_, err := s.col.InsertOne(ctx, expense)
	return err
}

func (s *expenseStore) GetExpense(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	var expense models.Expense
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseStore) ListExpensesForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error) {
	cursor, err := s.col.Find(ctx,
		bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *expenseStore) ReplaceExpense(ctx context.Context, id primitive.ObjectID, expense *models.Expense) error {
	expense.ID = id
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, expense)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *expenseStore) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
