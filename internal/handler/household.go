package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/model"
	"github.com/rbeckett/hearth/internal/store"
	"github.com/rbeckett/hearth/internal/websocket"
)

type HouseholdHandler struct {
	households *store.HouseholdStore
	users      *store.UserStore
	sessions   *store.SessionStore
	events     *store.EventStore
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewHouseholdHandler(hs *store.HouseholdStore, us *store.UserStore, ss *store.SessionStore, es *store.EventStore, hub *websocket.Hub, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		households: hs,
		users:      us,
		sessions:   ss,
		events:     es,
		hub:        hub,
		logger:     logger.With("component", "household"),
	}
}

// Get returns the active household. The invite code is only included for
// owners.
func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	household, err := h.households.GetByID(auth.HouseholdID(r.Context()))
	if err != nil || household == nil {
		writeError(w, http.StatusInternalServerError, "failed to load household")
		return
	}
	if !auth.IsOwner(r.Context()) {
		household.InviteCode = ""
	}
	writeJSON(w, http.StatusOK, household)
}

type createHouseholdRequest struct {
	Name string `json:"name"`
}

// Create founds an additional household with the caller as owner and
// switches the session to it.
func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	household, err := h.households.Create(req.Name, ac.UserID)
	if err != nil {
		h.logger.Error("create household", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create household")
		return
	}

	if err := h.sessions.SwitchHousehold(ac.SessionID, household.ID); err != nil {
		h.logger.Error("switch household", "error", err)
	}
	writeJSON(w, http.StatusCreated, household)
}

type joinRequest struct {
	InviteCode string `json:"invite_code"`
}

// Join adds the caller to the household behind an invite code and switches
// the session to it.
func (h *HouseholdHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.InviteCode = strings.TrimSpace(req.InviteCode)
	if req.InviteCode == "" {
		writeError(w, http.StatusBadRequest, "invite_code is required")
		return
	}

	household, err := h.households.GetByInviteCode(req.InviteCode)
	if err != nil {
		h.logger.Error("invite lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to join household")
		return
	}
	if household == nil {
		writeError(w, http.StatusNotFound, "invalid invite code")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	existing, err := h.households.GetMember(household.ID, ac.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to join household")
		return
	}
	if existing == nil {
		if _, err := h.households.AddMember(household.ID, ac.UserID, model.RoleMember); err != nil {
			h.logger.Error("add member", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to join household")
			return
		}
	}

	if err := h.sessions.SwitchHousehold(ac.SessionID, household.ID); err != nil {
		h.logger.Error("switch household", "error", err)
	}
	household.InviteCode = ""
	writeJSON(w, http.StatusOK, household)
}

// RegenerateInviteCode rotates the invite code. Owner only.
func (h *HouseholdHandler) RegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	code, err := h.households.RegenerateInviteCode(ac.HouseholdID, ac.UserID)
	if err != nil {
		writeStoreError(w, err, "failed to regenerate invite code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"invite_code": code})
}

// memberView is a member joined with their user's display fields.
type memberView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (h *HouseholdHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.households.ListMembers(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	views := make([]memberView, 0, len(members))
	for _, m := range members {
		v := memberView{UserID: m.UserID, Role: m.Role}
		if user, err := h.users.GetByID(m.UserID); err == nil && user != nil {
			v.Name = user.Name
			v.Email = user.Email
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

type roleRequest struct {
	Role string `json:"role"`
}

// UpdateMemberRole promotes or demotes a member. Owner only. The last owner
// cannot demote themselves.
func (h *HouseholdHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Role != model.RoleOwner && req.Role != model.RoleMember {
		writeError(w, http.StatusBadRequest, "role must be owner or member")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	if userID == ac.UserID && req.Role == model.RoleMember {
		owners, err := h.countOwners(ac.HouseholdID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update role")
			return
		}
		if owners <= 1 {
			writeError(w, http.StatusConflict, "household must keep at least one owner")
			return
		}
	}

	if err := h.households.UpdateMemberRole(ac.HouseholdID, ac.UserID, userID, req.Role); err != nil {
		writeStoreError(w, err, "failed to update role")
		return
	}

	h.recordRoleChange(ac, userID, req.Role)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// SwitchHousehold points the session at another household the caller
// belongs to.
func (h *HouseholdHandler) SwitchHousehold(w http.ResponseWriter, r *http.Request) {
	householdID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	member, err := h.households.GetMember(householdID, ac.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to switch household")
		return
	}
	if member == nil {
		writeError(w, http.StatusForbidden, "not a member of that household")
		return
	}

	if err := h.sessions.SwitchHousehold(ac.SessionID, householdID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to switch household")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "switched"})
}

// ListMine returns every household the caller belongs to.
func (h *HouseholdHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	households, err := h.households.ListHouseholdsForUser(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list households")
		return
	}
	for i := range households {
		households[i].InviteCode = ""
	}
	if households == nil {
		households = []model.Household{}
	}
	writeJSON(w, http.StatusOK, households)
}

func (h *HouseholdHandler) countOwners(householdID int64) (int, error) {
	members, err := h.households.ListMembers(householdID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range members {
		if m.Role == model.RoleOwner {
			count++
		}
	}
	return count, nil
}

func (h *HouseholdHandler) recordRoleChange(ac auth.AuthContext, userID int64, role string) {
	name := ""
	if user, err := h.users.GetByID(userID); err == nil && user != nil {
		name = user.Name
	}
	event, err := h.events.Record(ac.HouseholdID, model.EventRoleChanged, &ac.UserID, map[string]string{
		"name": name,
		"role": role,
	})
	if err != nil {
		h.logger.Error("record role change", "error", err)
		return
	}
	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("member", "role_changed", event.ID, nil))
}
