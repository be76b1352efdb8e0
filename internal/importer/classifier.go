package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"jortega/finanzas/internal/models"
)

// Rule maps a set of substring keywords to a category and kind. Rules are
// evaluated top to bottom with first-match-wins, so their order is a
// deliberate priority chain: specific providers come before generic
// catch-alls.
type Rule struct {
	Keywords []string            `yaml:"keywords"`
	Category string              `yaml:"category"`
	Kind     models.CategoryKind `yaml:"kind"`
}

// Classification is the category suggestion for one statement row.
type Classification struct {
	Category string
	Kind     models.CategoryKind
}

// Classifier assigns categories to statement rows from an ordered rule table.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over the given rules; nil falls back to
// the built-in table.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify maps a free-text description and an optional debit/credit marker
// to a category. Both inputs are lowercased; the first rule with a keyword
// contained in either wins. When nothing matches, descriptions containing
// "ingreso" fall back to other-income, everything else to other-expense.
func (c *Classifier) Classify(description, typeMarker string) Classification {
	text := strings.ToLower(description)
	marker := strings.ToLower(typeMarker)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return Classification{Category: rule.Category, Kind: rule.Kind}
			}
			if marker != "" && strings.Contains(marker, keyword) {
				return Classification{Category: rule.Category, Kind: rule.Kind}
			}
		}
	}

	if strings.Contains(text, "ingreso") {
		return Classification{Category: "Otros ingresos", Kind: models.KindIncome}
	}
	return Classification{Category: "Otros gastos", Kind: models.KindExpense}
}

// ResolveType determines the transaction type for a row. An explicit
// debit/credit marker outranks everything; after that a negative normalized
// amount always means expense, since banks encode direction by sign when no
// marker column exists. Only a non-negative amount defers to the
// classifier's suggested kind.
func ResolveType(typeMarker string, amount decimal.Decimal, suggested models.CategoryKind) models.TransactionType {
	marker := strings.ToLower(typeMarker)
	if marker != "" {
		if strings.Contains(marker, "credit") {
			return models.TransactionIncome
		}
		if strings.Contains(marker, "debit") {
			return models.TransactionExpense
		}
	}
	if amount.IsNegative() {
		return models.TransactionExpense
	}
	if suggested == models.KindIncome {
		return models.TransactionIncome
	}
	return models.TransactionExpense
}

// LoadRules reads a rule table from YAML, preserving document order. Used to
// override the built-in table without a rebuild.
func LoadRules(r io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing rules: %w", err)
	}
	for i, rule := range rules {
		if len(rule.Keywords) == 0 || rule.Category == "" {
			return nil, fmt.Errorf("rule %d: keywords and category are required", i)
		}
		switch rule.Kind {
		case models.KindIncome, models.KindExpense:
		default:
			return nil, fmt.Errorf("rule %d: invalid kind %q", i, rule.Kind)
		}
	}
	return rules, nil
}

// DefaultRules returns the built-in classification table. Keywords are
// lowercase substrings matched against the row description or its
// debit/credit marker.
func DefaultRules() []Rule {
	return []Rule{
		// Common income: payroll, benefits
		{Keywords: []string{"nomina", "salary", "payroll", "loon", "vebego"}, Category: "Salario", Kind: models.KindIncome},
		{Keywords: []string{"belastingdienst", "svb", "sociale verzekeringsbank", "toeslag", "allowance"}, Category: "Subsidios", Kind: models.KindIncome},
		// Transfers and generic payments
		{Keywords: []string{"transfer", "tikkie"}, Category: "Transferencias", Kind: models.KindExpense},
		// Groceries and food
		{Keywords: []string{"mercadona", "carrefour", "jumbo", "albert heijn", "ah ", "lidl", "plus ", "super", "supermercado"}, Category: "Supermercado", Kind: models.KindExpense},
		{Keywords: []string{"rest", "bar", "cafe", "restaurant"}, Category: "Restaurantes", Kind: models.KindExpense},
		// Subscriptions and online shopping
		{Keywords: []string{"netflix", "spotify", "amazon prime", "hbo", "disney"}, Category: "Suscripciones", Kind: models.KindExpense},
		{Keywords: []string{"amazon", "bol.com", "coolblue", "klarna", "bever", "nike", "shein"}, Category: "Compras", Kind: models.KindExpense},
		// Frequent payment terminals and gateways
		{Keywords: []string{"payment terminal", "mollie"}, Category: "Compras", Kind: models.KindExpense},
		// Utilities and bills; specific providers before the generic rules
		{Keywords: []string{"vattenfall", "stroom", "electric"}, Category: "Electricidad", Kind: models.KindExpense},
		{Keywords: []string{"eneco", "essent", "warmte", " stadsverwarming", " gas "}, Category: "Gas", Kind: models.KindExpense},
		{Keywords: []string{"pwn", "waterleiding", "hoogheemraadschap", "water"}, Category: "Agua", Kind: models.KindExpense},
		{Keywords: []string{"ziggo"}, Category: "Internet", Kind: models.KindExpense},
		{Keywords: []string{"lycamobile", "telefonia", "telecom"}, Category: "Telefonía", Kind: models.KindExpense},
		{Keywords: []string{"gemeente"}, Category: "Impuestos municipales", Kind: models.KindExpense},
		{Keywords: []string{"belasting"}, Category: "Impuestos", Kind: models.KindExpense},
		{Keywords: []string{"zorg", "asr"}, Category: "Salud", Kind: models.KindExpense},
		// Education: schools, school equipment rental
		{Keywords: []string{"scholen", "school", "stichting scholen", "rent company"}, Category: "Educación", Kind: models.KindExpense},
		// Transport
		{Keywords: []string{"uber", "cabify", "bus", "metro", "tren", "ns ", "gvb", "ov-chip"}, Category: "Transporte", Kind: models.KindExpense},
		// Rent
		{Keywords: []string{"huur", "rent", "pluijm"}, Category: "Alquiler", Kind: models.KindExpense},
		// Payment methods
		{Keywords: []string{"ideal"}, Category: "Compras", Kind: models.KindExpense},
		{Keywords: []string{"sepa"}, Category: "Suscripciones", Kind: models.KindExpense},
		// Bank charges and products
		{Keywords: []string{"oranjepakket", "batch payment", "various", "creditcard", "incasso ing"}, Category: "Bancarios", Kind: models.KindExpense},
	}
}
