package importer

import (
	"context"
	"errors"
	"strings"
	"time"

	"jortega/finanzas/internal/currencyutils"
	"jortega/finanzas/internal/dateutils"
	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
)

// Request-level precondition failures. Anything else that goes wrong with an
// individual row is absorbed into the result counters.
var (
	ErrMissingFile    = errors.New("no file")
	ErrMissingAccount = errors.New("no account selected")
	ErrMissingUser    = errors.New("no user")
)

// Options configures one import invocation.
type Options struct {
	UserID    string
	AccountID string
	Delimiter rune
	DateOrder dateutils.DateOrder
	HasHeader bool
	Columns   ColumnSpec
}

// Importer drives the import pipeline over an uploaded statement:
// parse, resolve columns, then per row extract, normalize, classify,
// provision, deduplicate and insert. Rows are processed strictly in order
// because later rows reuse categories and payees created by earlier ones.
type Importer struct {
	transactions TransactionStore
	categories   CategoryStore
	payees       PayeeStore
	classifier   *Classifier
	logger       logging.Logger
}

// New creates an importer over the given stores. A nil classifier gets the
// built-in rule table; a nil logger gets the process default.
func New(transactions TransactionStore, categories CategoryStore, payees PayeeStore, classifier *Classifier, logger logging.Logger) *Importer {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Importer{
		transactions: transactions,
		categories:   categories,
		payees:       payees,
		classifier:   classifier,
		logger:       logger,
	}
}

// Import processes one uploaded statement and returns the aggregate
// counters. A row that cannot be processed is counted and skipped, never
// fatal; only missing preconditions and store failures abort the run.
// Rows inserted before a store failure are not rolled back.
func (imp *Importer) Import(ctx context.Context, content string, opts Options) (*models.ImportResult, error) {
	if opts.UserID == "" {
		return nil, ErrMissingUser
	}
	if opts.AccountID == "" {
		return nil, ErrMissingAccount
	}
	if content == "" {
		return nil, ErrMissingFile
	}
	if opts.DateOrder == "" {
		opts.DateOrder = dateutils.OrderDayFirst
	}

	file, err := ParseFile(content, opts.Delimiter, opts.HasHeader)
	if err != nil {
		return nil, err
	}

	columns := opts.Columns
	if opts.HasHeader {
		columns = ResolveColumns(file, columns)
	}

	logger := imp.logger.WithFields(
		logging.Field{Key: logging.FieldUserID, Value: opts.UserID},
		logging.Field{Key: logging.FieldAccountID, Value: opts.AccountID},
	)
	logger.Info("Starting CSV import", logging.Field{Key: logging.FieldCount, Value: len(file.Records)})

	provisioner := NewProvisioner(imp.categories, imp.payees, opts.UserID, imp.logger)
	result := &models.ImportResult{}

	for i, record := range file.Records {
		outcome, err := imp.processRow(ctx, record, columns, opts, provisioner)
		if err != nil {
			// Store-level failure: abort the remaining rows. Earlier
			// inserts stay.
			logger.WithError(err).WithField(logging.FieldRow, i).Error("Import aborted by store failure")
			return nil, err
		}
		switch outcome {
		case rowInserted:
			result.Inserted++
		case rowDuplicate:
			result.DuplicatesSkipped++
		case rowSkipped:
			result.Skipped++
		}
	}

	result.CategoriesCreated = provisioner.CategoriesCreated
	result.PayeesCreated = provisioner.PayeesCreated

	logger.Info("CSV import finished",
		logging.Field{Key: "inserted", Value: result.Inserted},
		logging.Field{Key: "skipped", Value: result.Skipped},
		logging.Field{Key: "duplicates_skipped", Value: result.DuplicatesSkipped},
		logging.Field{Key: "categories_created", Value: result.CategoriesCreated},
		logging.Field{Key: "payees_created", Value: result.PayeesCreated},
	)
	return result, nil
}

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowDuplicate
	rowInserted
)

func (imp *Importer) processRow(ctx context.Context, record Record, columns ColumnSpec, opts Options, provisioner *Provisioner) (rowOutcome, error) {
	rawAmount := record.Value(columns.Amount)
	rawDate := record.Value(columns.Date)
	description := record.Value(columns.Description)
	notes := record.Value(columns.Notes)

	// Rows without an amount or a date are skipped before any
	// normalization attempt.
	if rawAmount == "" || rawDate == "" {
		return rowSkipped, nil
	}

	amount := currencyutils.NormalizeAmount(rawAmount)

	typeMarker := ""
	if columns.Type != "" {
		typeMarker = strings.ToLower(record.Value(columns.Type))
	}

	classification := imp.classifier.Classify(description, typeMarker)
	txType := ResolveType(typeMarker, amount, classification.Kind)
	date := dateutils.ParseStatementDate(rawDate, opts.DateOrder)

	imp.logger.Debug("Classified statement row",
		logging.Field{Key: logging.FieldCategory, Value: classification.Category},
		logging.Field{Key: logging.FieldKind, Value: string(txType)},
		logging.Field{Key: logging.FieldAmount, Value: currencyutils.FormatAmount(amount.Abs())},
	)

	kind := models.CategoryKind(txType)
	category, err := provisioner.EnsureCategory(ctx, classification.Category, kind)
	if err != nil {
		return rowSkipped, err
	}

	payeeName := description
	if payeeName == "" {
		payeeName = classification.Category
	}
	defaultCategoryID := ""
	if category != nil {
		defaultCategoryID = category.ID.Hex()
	}
	payee, err := provisioner.FindOrCreatePayee(ctx, payeeName, kind, defaultCategoryID)
	if err != nil {
		return rowSkipped, err
	}

	tx := models.Transaction{
		Date:      date,
		Type:      txType,
		Amount:    amount.Abs().InexactFloat64(),
		AccountID: opts.AccountID,
		PayeeName: description,
		Notes:     notes,
		UserID:    opts.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if category != nil {
		tx.CategoryID = category.ID.Hex()
	}
	if payee != nil {
		tx.PayeeID = payee.ID.Hex()
	}

	if err := tx.Validate(); err != nil {
		imp.logger.WithError(err).Debug("Row failed transaction validation, skipping")
		return rowSkipped, nil
	}

	exists, err := imp.transactions.ExistsDuplicate(ctx, NewDuplicateProbe(tx))
	if err != nil {
		return rowSkipped, err
	}
	if exists {
		return rowDuplicate, nil
	}

	if _, err := imp.transactions.Insert(ctx, tx); err != nil {
		return rowSkipped, err
	}
	return rowInserted, nil
}
