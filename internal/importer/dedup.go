package importer

import (
	"time"

	"jortega/finanzas/internal/dateutils"
	"jortega/finanzas/internal/models"
)

// DuplicateProbe describes the duplicate search for one candidate
// transaction: exact user, account, type and amount, date within the UTC
// calendar day, and a payee-name or notes overlap when either is present.
//
// This is a heuristic, not an exact fingerprint. Two same-day, same-amount
// transactions with different descriptions pass through; two genuinely
// distinct same-day purchases at the same payee for the same amount are
// collapsed. That tradeoff is deliberate and must not be tightened without
// product sign-off.
type DuplicateProbe struct {
	UserID    string
	AccountID string
	Type      models.TransactionType
	Amount    float64
	DayStart  time.Time
	DayEnd    time.Time
	PayeeName string
	Notes     string
}

// NewDuplicateProbe builds the probe for a normalized candidate transaction.
func NewDuplicateProbe(tx models.Transaction) DuplicateProbe {
	start, end := dateutils.DayWindow(tx.Date)
	return DuplicateProbe{
		UserID:    tx.UserID,
		AccountID: tx.AccountID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		DayStart:  start,
		DayEnd:    end,
		PayeeName: tx.PayeeName,
		Notes:     tx.Notes,
	}
}

// MatchesDuplicate is the duplicate predicate applied to one stored
// transaction. User, account, type and amount must match exactly and the
// stored date must fall inside the probe's day window. When the probe
// carries a payee name or notes, at least one of them must match the stored
// document; when it carries neither, the day window alone decides.
func MatchesDuplicate(probe DuplicateProbe, existing models.Transaction) bool {
	if existing.UserID != probe.UserID ||
		existing.AccountID != probe.AccountID ||
		existing.Type != probe.Type ||
		existing.Amount != probe.Amount {
		return false
	}
	if existing.Date.Before(probe.DayStart) || existing.Date.After(probe.DayEnd) {
		return false
	}
	if probe.PayeeName == "" && probe.Notes == "" {
		return true
	}
	if probe.PayeeName != "" && existing.PayeeName == probe.PayeeName {
		return true
	}
	if probe.Notes != "" && existing.Notes == probe.Notes {
		return true
	}
	return false
}
