package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
)

// CategoryStore persists categories.
type CategoryStore struct {
	coll   *mongo.Collection
	logger logging.Logger
}

// FindByNameKind returns the user's category with the given name and kind,
// or nil when none exists.
func (s *CategoryStore) FindByNameKind(ctx context.Context, userID, name string, kind models.CategoryKind) (*models.Category, error) {
	filter := bson.M{"userId": userID, "name": name, "kind": kind}
	var cat models.Category
	err := s.coll.FindOne(ctx, filter).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding category: %w", err)
	}
	return &cat, nil
}

// Insert writes a category and returns it with its assigned id.
func (s *CategoryStore) Insert(ctx context.Context, cat models.Category) (*models.Category, error) {
	res, err := s.coll.InsertOne(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("error inserting category: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		cat.ID = id
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCollection, Value: collCategories},
		logging.Field{Key: logging.FieldCategory, Value: cat.Name},
	).Debug("Inserted category")
	return &cat, nil
}

// List returns a user's categories sorted by name.
func (s *CategoryStore) List(ctx context.Context, userID string) ([]models.Category, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	var out []models.Category
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding categories: %w", err)
	}
	return out, nil
}
