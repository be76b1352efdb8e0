package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		Date:      time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		Type:      TransactionExpense,
		Amount:    25.50,
		AccountID: "acc-1",
		UserID:    "user-1",
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{name: "valid expense", mutate: func(tx *Transaction) {}, wantErr: false},
		{name: "zero amount is allowed", mutate: func(tx *Transaction) { tx.Amount = 0 }, wantErr: false},
		{
			name:    "transfer without account is allowed",
			mutate:  func(tx *Transaction) { tx.Type = TransactionTransfer; tx.AccountID = "" },
			wantErr: false,
		},
		{name: "invalid type", mutate: func(tx *Transaction) { tx.Type = "loan" }, wantErr: true},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, wantErr: true},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = -1 }, wantErr: true},
		{name: "missing user", mutate: func(tx *Transaction) { tx.UserID = "" }, wantErr: true},
		{
			name:    "expense without account",
			mutate:  func(tx *Transaction) { tx.AccountID = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategory_Validate(t *testing.T) {
	valid := Category{Name: "Supermercado", Kind: KindExpense, UserID: "user-1"}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "  "
	assert.Error(t, noName.Validate())

	badKind := valid
	badKind.Kind = "both"
	assert.Error(t, badKind.Validate())

	noUser := valid
	noUser.UserID = ""
	assert.Error(t, noUser.Validate())
}

func TestPayee_Validate(t *testing.T) {
	valid := Payee{Name: "MERCADONA", Type: PayeeExpense, UserID: "user-1"}
	assert.NoError(t, valid.Validate())

	both := valid
	both.Type = PayeeBoth
	assert.NoError(t, both.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())

	badType := valid
	badType.Type = "transfer"
	assert.Error(t, badType.Validate())
}

func TestAccount_Validate(t *testing.T) {
	valid := Account{Name: "Checking", Type: AccountBank, Currency: "EUR", UserID: "user-1"}
	assert.NoError(t, valid.Validate())

	badCurrency := valid
	badCurrency.Currency = "USD"
	assert.Error(t, badCurrency.Validate())

	badType := valid
	badType.Type = "broker"
	assert.Error(t, badType.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())
}
