package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rbeckett/hearth/internal/analytics"
	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/store"
)

type ActivityHandler struct {
	events *store.EventStore
	logger *slog.Logger
}

func NewActivityHandler(es *store.EventStore, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{events: es, logger: logger.With("component", "activity")}
}

// Recent returns the household's activity feed, newest first. An optional
// limit query parameter caps the number of rows.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := analytics.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	events, err := h.events.Recent(auth.HouseholdID(r.Context()), limit)
	if err != nil {
		h.logger.Error("load events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}

	items := analytics.BuildRecentActivity(events, limit)
	if items == nil {
		items = []analytics.ActivityItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
