package models

import (
	"errors"
	"fmt"
	"strings"
)

// Validation mirrors the persistence schemas: a document that fails here is
// never written to the store.

// Validate checks a transaction before insertion.
func (t Transaction) Validate() error {
	switch t.Type {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
	default:
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	if t.Amount < 0 {
		return errors.New("transaction amount must be non-negative")
	}
	if t.UserID == "" {
		return errors.New("transaction userId is required")
	}
	if t.Type != TransactionTransfer && t.AccountID == "" {
		return errors.New("transaction accountId is required")
	}
	return nil
}

// Validate checks a category before insertion.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}
	switch c.Kind {
	case KindIncome, KindExpense:
	default:
		return fmt.Errorf("invalid category kind %q", c.Kind)
	}
	if c.UserID == "" {
		return errors.New("category userId is required")
	}
	return nil
}

// Validate checks a payee before insertion.
func (p Payee) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("payee name is required")
	}
	switch p.Type {
	case PayeeIncome, PayeeExpense, PayeeBoth:
	default:
		return fmt.Errorf("invalid payee type %q", p.Type)
	}
	if p.UserID == "" {
		return errors.New("payee userId is required")
	}
	return nil
}

// Validate checks an account before insertion.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("account name is required")
	}
	switch a.Type {
	case AccountBank, AccountCash, AccountWallet:
	default:
		return fmt.Errorf("invalid account type %q", a.Type)
	}
	if a.Currency != "EUR" {
		return fmt.Errorf("unsupported currency %q", a.Currency)
	}
	if a.UserID == "" {
		return errors.New("account userId is required")
	}
	return nil
}
