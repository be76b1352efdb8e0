// Package models defines the documents persisted by the application and the
// ephemeral values exchanged between the import pipeline and its callers.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType is the direction of a transaction. The amount itself is
// always stored as an absolute value; direction is carried by the type.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// CategoryKind classifies a category as income or expense. Distinct from
// TransactionType, which also includes transfers.
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

// PayeeType records which side of the ledger a payee usually appears on.
type PayeeType string

const (
	PayeeIncome  PayeeType = "income"
	PayeeExpense PayeeType = "expense"
	PayeeBoth    PayeeType = "both"
)

// AccountType is the kind of account holding transactions.
type AccountType string

const (
	AccountBank   AccountType = "bank"
	AccountCash   AccountType = "cash"
	AccountWallet AccountType = "wallet"
)

// Transaction is a single income, expense or transfer movement. It belongs to
// exactly one user and, for income/expense, exactly one account.
type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	Type          TransactionType    `bson:"type" json:"type"`
	Amount        float64            `bson:"amount" json:"amount"`
	AccountID     string             `bson:"accountId,omitempty" json:"accountId,omitempty"`
	FromAccountID string             `bson:"fromAccountId,omitempty" json:"fromAccountId,omitempty"`
	ToAccountID   string             `bson:"toAccountId,omitempty" json:"toAccountId,omitempty"`
	CategoryID    string             `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	PayeeID       string             `bson:"payeeId,omitempty" json:"payeeId,omitempty"`
	PayeeName     string             `bson:"payeeName,omitempty" json:"payeeName,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Reference     string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Category is unique per (userId, name, kind); the import provisioner treats
// that tuple as a natural key and never creates duplicates.
type Category struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Kind            CategoryKind       `bson:"kind" json:"kind"`
	FixedOrVariable string             `bson:"fixedOrVariable,omitempty" json:"fixedOrVariable,omitempty"`
	Color           string             `bson:"color,omitempty" json:"color,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
}

// Payee is a transaction counterparty. The import path treats (userId, name)
// as unique and reuses the first match.
type Payee struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Type              PayeeType          `bson:"type" json:"type"`
	DefaultCategoryID string             `bson:"defaultCategoryId,omitempty" json:"defaultCategoryId,omitempty"`
	DefaultAmount     float64            `bson:"defaultAmount,omitempty" json:"defaultAmount,omitempty"`
	DefaultNotes      string             `bson:"defaultNotes,omitempty" json:"defaultNotes,omitempty"`
	IsFixed           bool               `bson:"isFixed,omitempty" json:"isFixed,omitempty"`
	Frequency         string             `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Color             string             `bson:"color,omitempty" json:"color,omitempty"`
	UserID            string             `bson:"userId" json:"userId"`
}

// Account holds transactions for a user.
type Account struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Type           AccountType        `bson:"type" json:"type"`
	Currency       string             `bson:"currency" json:"currency"`
	InitialBalance float64            `bson:"initialBalance" json:"initialBalance"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	UserID         string             `bson:"userId" json:"userId"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// ImportResult aggregates the per-row outcomes of one import run. It is
// returned to the caller and never persisted.
type ImportResult struct {
	Inserted          int `json:"inserted"`
	Skipped           int `json:"skipped"`
	DuplicatesSkipped int `json:"duplicatesSkipped"`
	CategoriesCreated int `json:"categoriesCreated"`
	PayeesCreated     int `json:"payeesCreated"`
}
