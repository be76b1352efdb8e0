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

// AccountStore persists accounts.
type AccountStore struct {
	coll   *mongo.Collection
	logger logging.Logger
}

// Insert writes an account and returns it with its assigned id.
func (s *AccountStore) Insert(ctx context.Context, acc models.Account) (*models.Account, error) {
	res, err := s.coll.InsertOne(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("error inserting account: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		acc.ID = id
	}
	s.logger.WithField(logging.FieldCollection, collAccounts).Debug("Inserted account")
	return &acc, nil
}

// FindByID returns the user's account with the given id, or nil when none
// exists or the id is not a valid object id.
func (s *AccountStore) FindByID(ctx context.Context, userID, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var acc models.Account
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "userId": userID}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding account: %w", err)
	}
	return &acc, nil
}

// List returns a user's accounts sorted by name.
func (s *AccountStore) List(ctx context.Context, userID string) ([]models.Account, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	var out []models.Account
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding accounts: %w", err)
	}
	return out, nil
}
