package importer

import (
	"context"
	"strings"

	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
)

// Provisioner lazily creates categories and payees as an import encounters
// them. One instance lives for the duration of a single import run; it
// memoizes lookups per (kind, name) to avoid redundant store round-trips,
// but the store's natural-key check remains authoritative, so correctness
// does not depend on the memoization.
//
// Provisioning is not safe for uncoordinated concurrent creation of the same
// key; the orchestrator processes rows strictly in order.
type Provisioner struct {
	categories CategoryStore
	payees     PayeeStore
	userID     string
	logger     logging.Logger

	categoryCache map[string]*models.Category
	payeeCache    map[string]*models.Payee

	// CategoriesCreated and PayeesCreated count inserts performed by this
	// provisioner during its import run.
	CategoriesCreated int
	PayeesCreated     int
}

// NewProvisioner creates a provisioner scoped to one user and import run.
func NewProvisioner(categories CategoryStore, payees PayeeStore, userID string, logger logging.Logger) *Provisioner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Provisioner{
		categories:    categories,
		payees:        payees,
		userID:        userID,
		logger:        logger,
		categoryCache: make(map[string]*models.Category),
		payeeCache:    make(map[string]*models.Payee),
	}
}

// EnsureCategory returns the category with the given (name, kind) for the
// provisioner's user, creating it on first use. A proposed category that
// fails validation yields (nil, nil): the row proceeds without a category
// link. Store errors propagate.
func (p *Provisioner) EnsureCategory(ctx context.Context, name string, kind models.CategoryKind) (*models.Category, error) {
	cacheKey := string(kind) + "\x00" + name
	if cached, ok := p.categoryCache[cacheKey]; ok {
		return cached, nil
	}

	existing, err := p.categories.FindByNameKind(ctx, p.userID, name, kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		p.categoryCache[cacheKey] = existing
		return existing, nil
	}

	candidate := models.Category{
		Name:            name,
		Kind:            kind,
		FixedOrVariable: "na",
		Color:           "#888888",
		UserID:          p.userID,
	}
	if err := candidate.Validate(); err != nil {
		p.logger.WithError(err).WithField(logging.FieldCategory, name).Warn("Category failed validation, leaving row unlinked")
		p.categoryCache[cacheKey] = nil
		return nil, nil
	}

	created, err := p.categories.Insert(ctx, candidate)
	if err != nil {
		return nil, err
	}
	p.CategoriesCreated++
	p.categoryCache[cacheKey] = created
	p.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: name},
		logging.Field{Key: logging.FieldKind, Value: string(kind)},
	).Debug("Created category")
	return created, nil
}

// FindOrCreatePayee returns the payee with the given name for the
// provisioner's user, creating it with the default category hint on first
// use. Stored names are matched exactly; the cache key is lowercased so one
// run does not create case variants of the same payee. Validation failure
// yields (nil, nil), store errors propagate.
func (p *Provisioner) FindOrCreatePayee(ctx context.Context, name string, kind models.CategoryKind, defaultCategoryID string) (*models.Payee, error) {
	cacheKey := strings.ToLower(name)
	if cached, ok := p.payeeCache[cacheKey]; ok {
		return cached, nil
	}

	existing, err := p.payees.FindByName(ctx, p.userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		p.payeeCache[cacheKey] = existing
		return existing, nil
	}

	candidate := models.Payee{
		Name:              name,
		Type:              models.PayeeType(kind),
		DefaultCategoryID: defaultCategoryID,
		UserID:            p.userID,
	}
	if err := candidate.Validate(); err != nil {
		p.logger.WithError(err).WithField(logging.FieldPayee, name).Warn("Payee failed validation, leaving row unlinked")
		p.payeeCache[cacheKey] = nil
		return nil, nil
	}

	created, err := p.payees.Insert(ctx, candidate)
	if err != nil {
		return nil, err
	}
	p.PayeesCreated++
	p.payeeCache[cacheKey] = created
	p.logger.WithField(logging.FieldPayee, name).Debug("Created payee")
	return created, nil
}
