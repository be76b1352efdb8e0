// Package store provides the MongoDB-backed persistence layer. The client is
// constructed once at the process root and handed to consumers explicitly;
// each entity gets a collection-scoped store with narrow find/insert
// operations. Per-document atomicity comes from the database; there is no
// cross-document transaction wrapping.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jortega/finanzas/internal/logging"
)

// Collection names.
const (
	collTransactions = "transactions"
	collCategories   = "categories"
	collPayees       = "payees"
	collAccounts     = "accounts"
)

// Store owns the Mongo client and hands out collection-scoped stores.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger logging.Logger
}

// Connect establishes the Mongo connection and verifies it with a ping.
// The returned Store is shared across requests for the process lifetime.
func Connect(ctx context.Context, uri, database string, logger logging.Logger) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is not set")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database is not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}

	logger.WithField("database", database).Info("Connected to document store")
	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the connection is still healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Transactions returns the transaction store.
func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{coll: s.db.Collection(collTransactions), logger: s.logger}
}

// Categories returns the category store.
func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{coll: s.db.Collection(collCategories), logger: s.logger}
}

// Payees returns the payee store.
func (s *Store) Payees() *PayeeStore {
	return &PayeeStore{coll: s.db.Collection(collPayees), logger: s.logger}
}

// Accounts returns the account store.
func (s *Store) Accounts() *AccountStore {
	return &AccountStore{coll: s.db.Collection(collAccounts), logger: s.logger}
}
