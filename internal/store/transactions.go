package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jortega/finanzas/internal/importer"
	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
)

// TransactionStore persists transactions.
type TransactionStore struct {
	coll   *mongo.Collection
	logger logging.Logger
}

// Insert writes a transaction and returns it with its assigned id.
func (s *TransactionStore) Insert(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	res, err := s.coll.InsertOne(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("error inserting transaction: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tx.ID = id
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCollection, Value: collTransactions},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount},
	).Debug("Inserted transaction")
	return &tx, nil
}

// ExistsDuplicate runs the import duplicate probe as a single query: exact
// user/account/type/amount, date within the probe's day window, and a
// payee-name or notes match when the probe carries either.
func (s *TransactionStore) ExistsDuplicate(ctx context.Context, probe importer.DuplicateProbe) (bool, error) {
	filter := bson.M{
		"userId":    probe.UserID,
		"accountId": probe.AccountID,
		"type":      probe.Type,
		"amount":    probe.Amount,
		"date":      bson.M{"$gte": probe.DayStart, "$lte": probe.DayEnd},
	}
	or := bson.A{}
	if probe.PayeeName != "" {
		or = append(or, bson.M{"payeeName": probe.PayeeName})
	}
	if probe.Notes != "" {
		or = append(or, bson.M{"notes": probe.Notes})
	}
	if len(or) > 0 {
		filter["$or"] = or
	}

	count, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error querying duplicates: %w", err)
	}
	return count > 0, nil
}

// TransactionFilter narrows List results.
type TransactionFilter struct {
	Type string
	From time.Time
	To   time.Time
}

// List returns a user's transactions, newest first.
func (s *TransactionStore) List(ctx context.Context, userID string, f TransactionFilter) ([]models.Transaction, error) {
	filter := bson.M{"userId": userID}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	dateRange := bson.M{}
	if !f.From.IsZero() {
		dateRange["$gte"] = f.From
	}
	if !f.To.IsZero() {
		dateRange["$lte"] = f.To
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	var out []models.Transaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return out, nil
}
