package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rbeckett/hearth/internal/analytics"
	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/dashboard"
	"github.com/rbeckett/hearth/internal/landing"
	"github.com/rbeckett/hearth/internal/store"
	"github.com/rbeckett/hearth/internal/websocket"
)

type LandingHandler struct {
	households *store.HouseholdStore
	users      *store.UserStore
	tasks      *store.TaskStore
	finance    *store.FinanceStore
	events     *store.EventStore
	hub        *websocket.Hub
	opts       dashboard.Options
	logger     *slog.Logger
}

func NewLandingHandler(
	hs *store.HouseholdStore,
	us *store.UserStore,
	ts *store.TaskStore,
	fs *store.FinanceStore,
	es *store.EventStore,
	hub *websocket.Hub,
	opts dashboard.Options,
	logger *slog.Logger,
) *LandingHandler {
	return &LandingHandler{
		households: hs,
		users:      us,
		tasks:      ts,
		finance:    fs,
		events:     es,
		hub:        hub,
		opts:       opts,
		logger:     logger.With("component", "landing"),
	}
}

// Page renders the household's landing page: effective markdown split into
// sanitized HTML segments interleaved with live widget payloads.
func (h *LandingHandler) Page(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	household, err := h.households.GetByID(ac.HouseholdID)
	if err != nil || household == nil {
		writeError(w, http.StatusInternalServerError, "failed to load household")
		return
	}

	markdown := landing.EffectiveMarkdown(
		landing.SavedMarkdown(household.LandingPageMarkdown),
		landing.DefaultMarkdown(household.Name),
	)

	src, err := h.loadSource(ac)
	if err != nil {
		h.logger.Error("load widget data", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	page, err := dashboard.RenderPage(markdown, src, h.opts)
	if err != nil {
		h.logger.Error("render page", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":     page,
		"can_edit": landing.CanEdit(ac.Role),
	})
}

// Editor returns the saved markdown in editor markup form. Owners only; the
// editor is never shown to members.
func (h *LandingHandler) Editor(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	if !landing.CanEdit(ac.Role) {
		writeError(w, http.StatusForbidden, "requires owner role")
		return
	}

	household, err := h.households.GetByID(ac.HouseholdID)
	if err != nil || household == nil {
		writeError(w, http.StatusInternalServerError, "failed to load household")
		return
	}

	markdown := landing.EffectiveMarkdown(
		landing.SavedMarkdown(household.LandingPageMarkdown),
		landing.DefaultMarkdown(household.Name),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"markdown": markdown,
		"markup":   landing.ToEditorMarkup(markdown),
	})
}

type updateLandingRequest struct {
	Markdown *string `json:"markdown"`
	Markup   *string `json:"markup"`
}

// Update saves new landing page content. Accepts either raw markdown with
// widget tokens or editor markup with widget elements; markup wins when both
// are sent. Concurrent saves are last-write-wins.
func (h *LandingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLandingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var markdown string
	switch {
	case req.Markup != nil:
		markdown = landing.FromEditorMarkup(*req.Markup)
	case req.Markdown != nil:
		markdown = *req.Markdown
	default:
		writeError(w, http.StatusBadRequest, "markdown or markup is required")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	if err := h.households.UpdateLandingMarkdown(ac.HouseholdID, ac.UserID, markdown); err != nil {
		writeStoreError(w, err, "failed to save landing page")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("landing", "updated", ac.HouseholdID, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Widget computes a single widget payload by key, for clients refreshing one
// widget off a websocket nudge instead of re-rendering the whole page.
func (h *LandingHandler) Widget(w http.ResponseWriter, r *http.Request) {
	key := landing.WidgetKey(r.PathValue("key"))
	if !landing.KnownKey(string(key)) {
		writeError(w, http.StatusNotFound, "unknown widget")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	src, err := h.loadSource(ac)
	if err != nil {
		h.logger.Error("load widget data", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build widget")
		return
	}

	widget, err := dashboard.BuildWidget(key, src, h.opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build widget")
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

// loadSource snapshots everything the widgets read in one place so a page
// render sees consistent data.
func (h *LandingHandler) loadSource(ac auth.AuthContext) (dashboard.SourceData, error) {
	src := dashboard.SourceData{ViewerID: ac.UserID}

	members, err := h.households.ListMembers(ac.HouseholdID)
	if err != nil {
		return src, err
	}
	src.Members = members

	src.MemberNames = make(map[int64]string, len(members))
	for _, m := range members {
		if user, err := h.users.GetByID(m.UserID); err == nil && user != nil {
			src.MemberNames[m.UserID] = user.Name
		}
	}

	if src.Tasks, err = h.tasks.List(ac.HouseholdID); err != nil {
		return src, err
	}
	if src.Completions, err = h.tasks.ListCompletions(ac.HouseholdID); err != nil {
		return src, err
	}
	src.LastCompletions = make(map[int64]*time.Time, len(src.Tasks))
	for _, t := range src.Tasks {
		last, err := h.tasks.LastCompletion(t.ID)
		if err != nil {
			return src, err
		}
		src.LastCompletions[t.ID] = last
	}

	if src.Entries, err = h.finance.ListEntries(ac.HouseholdID); err != nil {
		return src, err
	}
	if src.Audits, err = h.finance.ListAudits(ac.HouseholdID); err != nil {
		return src, err
	}
	if src.Events, err = h.events.Recent(ac.HouseholdID, analytics.DefaultActivityLimit); err != nil {
		return src, err
	}
	return src, nil
}
