package server

import (
	"encoding/json"
	"net/http"
	"time"

	"jortega/finanzas/internal/auth"
	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/models"
	"jortega/finanzas/internal/store"
)

// EntityHandler serves the thin read and create endpoints over the
// stored entities.
type EntityHandler struct {
	store *store.Store
	log   logging.Logger
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler(st *store.Store, log logging.Logger) *EntityHandler {
	return &EntityHandler{store: st, log: log}
}

// ListTransactions handles GET /api/transactions. Optional query
// parameters: type, from, to (RFC 3339 dates).
func (h *EntityHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := store.TransactionFilter{Type: r.URL.Query().Get("type")}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid from date")
			return
		}
		filter.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid to date")
			return
		}
		filter.To = t
	}

	transactions, err := h.store.Transactions().List(r.Context(), identity.UserID, filter)
	if err != nil {
		h.log.WithError(err).Error("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// ListCategories handles GET /api/categories.
func (h *EntityHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	categories, err := h.store.Categories().List(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("Failed to list categories")
		WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListPayees handles GET /api/payees.
func (h *EntityHandler) ListPayees(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	payees, err := h.store.Payees().List(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("Failed to list payees")
		WriteError(w, http.StatusInternalServerError, "Failed to list payees")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"payees": payees,
		"count":  len(payees),
	})
}

// ListAccounts handles GET /api/accounts.
func (h *EntityHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	accounts, err := h.store.Accounts().List(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("Failed to list accounts")
		WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// CreateAccount handles POST /api/accounts.
func (h *EntityHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Name           string  `json:"name"`
		Type           string  `json:"type"`
		Currency       string  `json:"currency"`
		InitialBalance float64 `json:"initialBalance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := models.Account{
		UserID:         identity.UserID,
		Name:           req.Name,
		Type:           models.AccountType(req.Type),
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if account.Currency == "" {
		account.Currency = "EUR"
	}
	if err := account.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.Accounts().Insert(r.Context(), account)
	if err != nil {
		h.log.WithError(err).Error("Failed to create account")
		WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}
