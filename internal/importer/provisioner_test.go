package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
)

func newTestProvisioner(categories *fakeCategoryStore, payees *fakePayeeStore) *Provisioner {
	return NewProvisioner(categories, payees, "user-1", &logging.MockLogger{})
}

func TestProvisioner_EnsureCategory_CreatesOnce(t *testing.T) {
	categories := &fakeCategoryStore{}
	p := newTestProvisioner(categories, &fakePayeeStore{})
	ctx := context.Background()

	first, err := p.EnsureCategory(ctx, "Supermercado", models.KindExpense)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Supermercado", first.Name)
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, "na", first.FixedOrVariable)
	assert.Equal(t, "#888888", first.Color)
	assert.False(t, first.ID.IsZero())

	second, err := p.EnsureCategory(ctx, "Supermercado", models.KindExpense)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, 1, p.CategoriesCreated)
	assert.Len(t, categories.categories, 1)
	// Second call must be served from the memo, not the store.
	assert.Equal(t, 1, categories.findCalls)
}

func TestProvisioner_EnsureCategory_SameNameDifferentKind(t *testing.T) {
	p := newTestProvisioner(&fakeCategoryStore{}, &fakePayeeStore{})
	ctx := context.Background()

	expense, err := p.EnsureCategory(ctx, "Transferencias", models.KindExpense)
	require.NoError(t, err)
	income, err := p.EnsureCategory(ctx, "Transferencias", models.KindIncome)
	require.NoError(t, err)

	assert.NotEqual(t, expense.ID, income.ID)
	assert.Equal(t, 2, p.CategoriesCreated)
}

func TestProvisioner_EnsureCategory_ReusesExisting(t *testing.T) {
	categories := &fakeCategoryStore{}
	seed, err := categories.Insert(context.Background(), models.Category{
		Name: "Salario", Kind: models.KindIncome, UserID: "user-1",
	})
	require.NoError(t, err)

	p := newTestProvisioner(categories, &fakePayeeStore{})
	got, err := p.EnsureCategory(context.Background(), "Salario", models.KindIncome)
	require.NoError(t, err)

	assert.Equal(t, seed.ID, got.ID)
	assert.Equal(t, 0, p.CategoriesCreated)
}

func TestProvisioner_EnsureCategory_ValidationFailureIsSoft(t *testing.T) {
	categories := &fakeCategoryStore{}
	p := newTestProvisioner(categories, &fakePayeeStore{})

	got, err := p.EnsureCategory(context.Background(), "", models.KindExpense)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, p.CategoriesCreated)
	assert.Empty(t, categories.categories)

	// The failure is memoized as nil too.
	got, err = p.EnsureCategory(context.Background(), "", models.KindExpense)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, categories.findCalls)
}

func TestProvisioner_EnsureCategory_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	p := newTestProvisioner(&fakeCategoryStore{findErr: storeErr}, &fakePayeeStore{})

	_, err := p.EnsureCategory(context.Background(), "Supermercado", models.KindExpense)
	assert.ErrorIs(t, err, storeErr)
}

func TestProvisioner_FindOrCreatePayee_CreatesWithDefaults(t *testing.T) {
	payees := &fakePayeeStore{}
	p := newTestProvisioner(&fakeCategoryStore{}, payees)

	got, err := p.FindOrCreatePayee(context.Background(), "MERCADONA", models.KindExpense, "cat-id-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "MERCADONA", got.Name)
	assert.Equal(t, models.PayeeExpense, got.Type)
	assert.Equal(t, "cat-id-1", got.DefaultCategoryID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, 1, p.PayeesCreated)
}

func TestProvisioner_FindOrCreatePayee_CacheIsCaseInsensitive(t *testing.T) {
	payees := &fakePayeeStore{}
	p := newTestProvisioner(&fakeCategoryStore{}, payees)
	ctx := context.Background()

	first, err := p.FindOrCreatePayee(ctx, "Mercadona", models.KindExpense, "")
	require.NoError(t, err)
	second, err := p.FindOrCreatePayee(ctx, "MERCADONA", models.KindExpense, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, payees.payees, 1)
}

func TestProvisioner_FindOrCreatePayee_ValidationFailureIsSoft(t *testing.T) {
	p := newTestProvisioner(&fakeCategoryStore{}, &fakePayeeStore{})

	got, err := p.FindOrCreatePayee(context.Background(), "", models.KindExpense, "")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, p.PayeesCreated)
}

func TestProvisioner_FindOrCreatePayee_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	p := newTestProvisioner(&fakeCategoryStore{}, &fakePayeeStore{insertErr: storeErr})

	_, err := p.FindOrCreatePayee(context.Background(), "MERCADONA", models.KindExpense, "")
	assert.ErrorIs(t, err, storeErr)
}
