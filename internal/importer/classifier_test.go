package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jortega/finanzas/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name             string
		description      string
		typeMarker       string
		expectedCategory string
		expectedKind     models.CategoryKind
	}{
		{
			name:             "payroll keyword",
			description:      "NOMINA ENERO EMPRESA SL",
			expectedCategory: "Salario",
			expectedKind:     models.KindIncome,
		},
		{
			name:             "supermarket keyword",
			description:      "COMPRA MERCADONA VALENCIA",
			expectedCategory: "Supermercado",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "case insensitive match",
			description:      "Albert Heijn 1234 AMS",
			expectedCategory: "Supermercado",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "earlier rule outranks later",
			description:      "amazon prime subscription",
			expectedCategory: "Suscripciones",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "generic amazon hits shopping",
			description:      "amazon marketplace order",
			expectedCategory: "Compras",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "keyword in type marker",
			description:      "payment 1234",
			typeMarker:       "sepa direct debit",
			expectedCategory: "Suscripciones",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "ingreso fallback",
			description:      "ingreso en efectivo",
			expectedCategory: "Otros ingresos",
			expectedKind:     models.KindIncome,
		},
		{
			name:             "default fallback",
			description:      "xyz unknown movement",
			expectedCategory: "Otros gastos",
			expectedKind:     models.KindExpense,
		},
		{
			name:             "empty description falls back",
			description:      "",
			expectedCategory: "Otros gastos",
			expectedKind:     models.KindExpense,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.description, tt.typeMarker)
			assert.Equal(t, tt.expectedCategory, got.Category)
			assert.Equal(t, tt.expectedKind, got.Kind)
		})
	}
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		name       string
		typeMarker string
		amount     string
		suggested  models.CategoryKind
		expected   models.TransactionType
	}{
		{
			name:       "credit marker wins over negative amount",
			typeMarker: "credit",
			amount:     "-50",
			suggested:  models.KindExpense,
			expected:   models.TransactionIncome,
		},
		{
			name:       "debit marker wins over income suggestion",
			typeMarker: "debit",
			amount:     "100",
			suggested:  models.KindIncome,
			expected:   models.TransactionExpense,
		},
		{
			name:      "negative amount without marker means expense",
			amount:    "-25.50",
			suggested: models.KindIncome,
			expected:  models.TransactionExpense,
		},
		{
			name:      "positive amount defers to income suggestion",
			amount:    "1200",
			suggested: models.KindIncome,
			expected:  models.TransactionIncome,
		},
		{
			name:      "positive amount defers to expense suggestion",
			amount:    "15",
			suggested: models.KindExpense,
			expected:  models.TransactionExpense,
		},
		{
			name:       "unrecognized marker falls through to sign",
			typeMarker: "transfer",
			amount:     "-10",
			suggested:  models.KindIncome,
			expected:   models.TransactionExpense,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.expected, ResolveType(tt.typeMarker, amount, tt.suggested))
		})
	}
}

func TestLoadRules(t *testing.T) {
	yaml := `
- keywords: ["coffee", "espresso"]
  category: Restaurantes
  kind: expense
- keywords: ["refund"]
  category: Otros ingresos
  kind: income
`
	rules, err := LoadRules(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, []string{"coffee", "espresso"}, rules[0].Keywords)
	assert.Equal(t, "Restaurantes", rules[0].Category)
	assert.Equal(t, models.KindExpense, rules[0].Kind)
	assert.Equal(t, models.KindIncome, rules[1].Kind)

	c := NewClassifier(rules)
	got := c.Classify("morning espresso bar", "")
	assert.Equal(t, "Restaurantes", got.Category)
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing category",
			yaml: `[{keywords: ["x"], kind: expense}]`,
		},
		{
			name: "missing keywords",
			yaml: `[{category: Compras, kind: expense}]`,
		},
		{
			name: "invalid kind",
			yaml: `[{keywords: ["x"], category: Compras, kind: both}]`,
		},
		{
			name: "not yaml",
			yaml: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultRules_AllValid(t *testing.T) {
	for i, rule := range DefaultRules() {
		assert.NotEmpty(t, rule.Keywords, "rule %d", i)
		assert.NotEmpty(t, rule.Category, "rule %d", i)
		assert.Contains(t, []models.CategoryKind{models.KindIncome, models.KindExpense}, rule.Kind, "rule %d", i)
		for _, kw := range rule.Keywords {
			assert.Equal(t, strings.ToLower(kw), kw, "rule %d keyword %q must be lowercase", i, kw)
		}
	}
}
