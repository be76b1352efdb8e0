package importer

import (
	"context"

	"jortega/finanzas/internal/models"
)

// The importer consumes narrow store interfaces so the pipeline can be
// exercised against in-memory fakes in tests while the Mongo-backed stores
// satisfy them in production.

// CategoryStore is the category persistence surface the import path needs.
type CategoryStore interface {
	// FindByNameKind looks up a category by its (userId, name, kind)
	// natural key.
	FindByNameKind(ctx context.Context, userID, name string, kind models.CategoryKind) (*models.Category, error)
	Insert(ctx context.Context, category models.Category) (*models.Category, error)
}

// PayeeStore is the payee persistence surface the import path needs.
type PayeeStore interface {
	// FindByName looks up a payee by (userId, name).
	FindByName(ctx context.Context, userID, name string) (*models.Payee, error)
	Insert(ctx context.Context, payee models.Payee) (*models.Payee, error)
}

// TransactionStore is the transaction persistence surface the import path
// needs.
type TransactionStore interface {
	Insert(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	// ExistsDuplicate reports whether any stored transaction satisfies the
	// probe. See MatchesDuplicate for the predicate semantics.
	ExistsDuplicate(ctx context.Context, probe DuplicateProbe) (bool, error)
}
