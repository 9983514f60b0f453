package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spendly-api/internal/storage"
)

// documentStore backs the schema-less PersonalExpense and TeamExpense
// collections. Documents are stored exactly as given; legacy keys included.
type documentStore struct {
	col *mongo.Collection
}

func (s *documentStore) Insert(ctx context.Context, doc bson.M) (bson.M, error) {
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) All(ctx context.Context) ([]bson.M, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *documentStore) Page(ctx context.Context, filter storage.DocumentFilter, page, limit int64) ([]bson.M, int64, error) {
	query := filterQuery(filter)

	cursor, err := s.col.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit),
	)
	if err != nil {
		return nil, 0, err
	}
	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	// Independent count; can diverge from the page under concurrent writes.
	count, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return docs, count, nil
}

func (s *documentStore) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (bson.M, error) {
	var doc bson.M
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) Delete(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func filterQuery(f storage.DocumentFilter) bson.M {
	query := bson.M{}
	if f.TeamID != "" {
		query["teamId"] = f.TeamID
	}
	if f.UserID != "" {
		query["userId"] = f.UserID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Start != nil || f.End != nil {
		date := bson.M{}
		if f.Start != nil {
			date["$gte"] = *f.Start
		}
		if f.End != nil {
			date["$lte"] = *f.End
		}
		query["date"] = date
	}
	return query
}
