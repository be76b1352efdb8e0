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

// PayeeStore persists payees.
type PayeeStore struct {
	coll   *mongo.Collection
	logger logging.Logger
}

// FindByName returns the user's payee with the given name, or nil when none
// exists. Matching is exact on the stored name.
func (s *PayeeStore) FindByName(ctx context.Context, userID, name string) (*models.Payee, error) {
	var payee models.Payee
	err := s.coll.FindOne(ctx, bson.M{"userId": userID, "name": name}).Decode(&payee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding payee: %w", err)
	}
	return &payee, nil
}

// Insert writes a payee and returns it with its assigned id.
func (s *PayeeStore) Insert(ctx context.Context, payee models.Payee) (*models.Payee, error) {
	res, err := s.coll.InsertOne(ctx, payee)
	if err != nil {
		return nil, fmt.Errorf("error inserting payee: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		payee.ID = id
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCollection, Value: collPayees},
		logging.Field{Key: logging.FieldPayee, Value: payee.Name},
	).Debug("Inserted payee")
	return &payee, nil
}

// List returns a user's payees sorted by name.
func (s *PayeeStore) List(ctx context.Context, userID string) ([]models.Payee, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing payees: %w", err)
	}
	var out []models.Payee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding payees: %w", err)
	}
	return out, nil
}
