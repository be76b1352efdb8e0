package importer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jortega/finanzas/internal/models"
)

// In-memory stores backing the pipeline tests. They apply the same
// natural-key and duplicate semantics as the Mongo-backed stores.

type fakeCategoryStore struct {
	categories []models.Category
	findErr    error
	insertErr  error
	findCalls  int
}

func (f *fakeCategoryStore) FindByNameKind(_ context.Context, userID, name string, kind models.CategoryKind) (*models.Category, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.categories {
		c := f.categories[i]
		if c.UserID == userID && c.Name == name && c.Kind == kind {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) Insert(_ context.Context, category models.Category) (*models.Category, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	category.ID = primitive.NewObjectID()
	f.categories = append(f.categories, category)
	return &category, nil
}

type fakePayeeStore struct {
	payees    []models.Payee
	findErr   error
	insertErr error
}

func (f *fakePayeeStore) FindByName(_ context.Context, userID, name string) (*models.Payee, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.payees {
		p := f.payees[i]
		if p.UserID == userID && p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePayeeStore) Insert(_ context.Context, payee models.Payee) (*models.Payee, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	payee.ID = primitive.NewObjectID()
	f.payees = append(f.payees, payee)
	return &payee, nil
}

type fakeTransactionStore struct {
	transactions []models.Transaction
	existsErr    error
	insertErr    error
}

func (f *fakeTransactionStore) Insert(_ context.Context, tx models.Transaction) (*models.Transaction, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	tx.ID = primitive.NewObjectID()
	f.transactions = append(f.transactions, tx)
	return &tx, nil
}

func (f *fakeTransactionStore) ExistsDuplicate(_ context.Context, probe DuplicateProbe) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, tx := range f.transactions {
		if MatchesDuplicate(probe, tx) {
			return true, nil
		}
	}
	return false, nil
}
