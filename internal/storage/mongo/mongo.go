// Package mongo implements the storage interfaces on a MongoDB database.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"spendly-api/internal/storage"
)

// Store holds one collection handle per entity. Construct it once at startup
// and pass it to the handlers.
type Store struct {
	client       *mongo.Client
	users        *userStore
	teams        *teamStore
	expenses     *expenseStore
	personal     *documentStore
	teamExpenses *documentStore
}

// New connects to the database, verifies the connection and bootstraps
// indexes. Collection names match the existing database, including the
// capitalized legacy collections.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{
		client:       client,
		users:        &userStore{col: db.Collection("users")},
		teams:        &teamStore{col: db.Collection("teams")},
		expenses:     &expenseStore{col: db.Collection("expenses")},
		personal:     &documentStore{col: db.Collection("PersonalExpense")},
		teamExpenses: &documentStore{col: db.Collection("TeamExpense")},
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}

	_, err = s.teamExpenses.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating team expense indexes: %w", err)
	}
	return nil
}

func (s *Store) Users() storage.UserStore                { return s.users }
func (s *Store) Teams() storage.TeamStore                { return s.teams }
func (s *Store) Expenses() storage.ExpenseStore          { return s.expenses }
func (s *Store) PersonalExpenses() storage.DocumentStore { return s.personal }
func (s *Store) TeamExpenses() storage.DocumentStore     { return s.teamExpenses }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
