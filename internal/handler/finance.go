package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbeckett/hearth/internal/analytics"
	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/model"
	"github.com/rbeckett/hearth/internal/store"
	"github.com/rbeckett/hearth/internal/websocket"
)

type FinanceHandler struct {
	finance    *store.FinanceStore
	households *store.HouseholdStore
	events     *store.EventStore
	users      *store.UserStore
	hub        *websocket.Hub
	currency   string
	logger     *slog.Logger
}

func NewFinanceHandler(fs *store.FinanceStore, hs *store.HouseholdStore, es *store.EventStore, us *store.UserStore, hub *websocket.Hub, currency string, logger *slog.Logger) *FinanceHandler {
	return &FinanceHandler{
		finance:    fs,
		households: hs,
		events:     es,
		users:      us,
		hub:        hub,
		currency:   currency,
		logger:     logger.With("component", "finance"),
	}
}

type entryRequest struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	EntryDate string `json:"entry_date"` // YYYY-MM-DD, optional
}

func (h *FinanceHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	var entryDate *time.Time
	if req.EntryDate != "" {
		d, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "entry_date must be YYYY-MM-DD")
			return
		}
		entryDate = &d
	}

	ac, _ := auth.FromContext(r.Context())
	entry, err := h.finance.CreateEntry(ac.HouseholdID, req.Title, req.Category, amount, ac.UserID, entryDate)
	if err != nil {
		h.logger.Error("create entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}

	payload := map[string]string{
		"title":  entry.Title,
		"actor":  h.userName(ac.UserID),
		"amount": amount.StringFixed(2) + " " + h.currency,
	}
	if _, err := h.events.Record(ac.HouseholdID, model.EventFinanceCreated, &ac.UserID, payload); err != nil {
		h.logger.Error("record event", "error", err)
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("finance", "created", entry.ID, nil))
	writeJSON(w, http.StatusCreated, entry)
}

func (h *FinanceHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.finance.ListEntries(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if entries == nil {
		entries = []model.FinanceEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *FinanceHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	entry, err := h.finance.GetEntry(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	if entry == nil || entry.HouseholdID != householdID {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	if err := h.finance.DeleteEntry(id); err != nil {
		h.logger.Error("delete entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("finance", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Balances returns per-member settlement positions for the window since the
// last cash audit.
func (h *FinanceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	entries, err := h.finance.ListEntries(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute balances")
		return
	}
	audits, err := h.finance.ListAudits(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute balances")
		return
	}
	members, err := h.households.ListMembers(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute balances")
		return
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}

	window := analytics.EntriesSinceLastAudit(entries, audits)
	balances := analytics.ComputeBalancesByMember(window, ids)
	if balances == nil {
		balances = []analytics.MemberBalance{}
	}
	writeJSON(w, http.StatusOK, balances)
}

// Monthly returns the recent monthly expense aggregation.
func (h *FinanceHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	entries, err := h.finance.ListEntries(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate expenses")
		return
	}

	months := analytics.AggregateMonthlyExpenses(entries, analytics.DefaultMonthLimit, analytics.DefaultTopCategories)
	if months == nil {
		months = []analytics.MonthlyExpenses{}
	}
	writeJSON(w, http.StatusOK, months)
}

// RequestAudit marks a settlement point. Balances reset to the entries
// recorded after it.
func (h *FinanceHandler) RequestAudit(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	audit, err := h.finance.RequestAudit(ac.HouseholdID, ac.UserID)
	if err != nil {
		h.logger.Error("request audit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to request audit")
		return
	}

	payload := map[string]string{"actor": h.userName(ac.UserID)}
	if _, err := h.events.Record(ac.HouseholdID, model.EventCashAuditRequested, &ac.UserID, payload); err != nil {
		h.logger.Error("record event", "error", err)
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("finance", "audit_requested", audit.ID, nil))
	writeJSON(w, http.StatusCreated, audit)
}

func (h *FinanceHandler) Audits(w http.ResponseWriter, r *http.Request) {
	audits, err := h.finance.ListAudits(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audits")
		return
	}
	if audits == nil {
		audits = []model.CashAuditRequest{}
	}
	writeJSON(w, http.StatusOK, audits)
}

func (h *FinanceHandler) userName(id int64) string {
	if user, err := h.users.GetByID(id); err == nil && user != nil {
		return user.Name
	}
	return ""
}
