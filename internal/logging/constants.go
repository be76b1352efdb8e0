package logging

// Standardized field names for structured logging.
// Keeping these in one place makes the log output consistent and easy to
// filter when debugging an import run.
const (
	FieldUserID     = "user_id"
	FieldAccountID  = "account_id"
	FieldRequestID  = "request_id"
	FieldRow        = "row"
	FieldCategory   = "category"
	FieldPayee      = "payee"
	FieldKind       = "kind"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldDelimiter  = "delimiter"
	FieldCollection = "collection"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldReason     = "reason"
)
