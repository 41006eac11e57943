package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/model"
	"github.com/rbeckett/hearth/internal/shopping"
	"github.com/rbeckett/hearth/internal/store"
	"github.com/rbeckett/hearth/internal/websocket"
)

type ShoppingHandler struct {
	shopping *store.ShoppingStore
	events   *store.EventStore
	users    *store.UserStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewShoppingHandler(ss *store.ShoppingStore, es *store.EventStore, us *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shopping: ss,
		events:   es,
		users:    us,
		hub:      hub,
		logger:   logger.With("component", "shopping"),
	}
}

type listRequest struct {
	Name string `json:"name"`
}

func (h *ShoppingHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	list, err := h.shopping.CreateList(householdID, req.Name)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("shopping_list", "created", list.ID, nil))
	writeJSON(w, http.StatusCreated, list)
}

func (h *ShoppingHandler) Lists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.shopping.ListLists(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list shopping lists")
		return
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ShoppingHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r, parsePathID(r, "id"))
	if !ok {
		return
	}

	if err := h.shopping.DeleteList(list.ID); err != nil {
		h.logger.Error("delete list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}

	h.hub.Broadcast(list.HouseholdID, websocket.NewMessage("shopping_list", "deleted", list.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}

type itemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

func (h *ShoppingHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r, parsePathID(r, "list_id"))
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		req.Category = shopping.Categorize(req.Name)
	}

	userID := auth.UserID(r.Context())
	item, err := h.shopping.CreateItem(list.ID, req.Name, req.Category, req.Quantity, &userID)
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.hub.Broadcast(list.HouseholdID, websocket.NewMessage("shopping_item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) Items(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r, parsePathID(r, "list_id"))
	if !ok {
		return
	}

	items, err := h.shopping.ListItems(list.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type checkRequest struct {
	Checked bool `json:"checked"`
}

// SetChecked toggles an item. Checking an item emits a shopping_completed
// event so the activity feed picks it up.
func (h *ShoppingHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	item, list, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.shopping.SetChecked(item.ID, req.Checked)
	if err != nil {
		h.logger.Error("set checked", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	if req.Checked && !item.Checked {
		ac, _ := auth.FromContext(r.Context())
		payload := map[string]string{"title": item.Name, "actor": h.userName(ac.UserID)}
		if _, err := h.events.Record(list.HouseholdID, model.EventShoppingCompleted, &ac.UserID, payload); err != nil {
			h.logger.Error("record event", "error", err)
		}
	}

	h.hub.Broadcast(list.HouseholdID, websocket.NewMessage("shopping_item", "checked", item.ID, map[string]any{"checked": req.Checked}))
	writeJSON(w, http.StatusOK, updated)
}

func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	item, list, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	if err := h.shopping.DeleteItem(item.ID); err != nil {
		h.logger.Error("delete item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.hub.Broadcast(list.HouseholdID, websocket.NewMessage("shopping_item", "deleted", item.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}

// ClearChecked removes all checked items from a list.
func (h *ShoppingHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r, parsePathID(r, "list_id"))
	if !ok {
		return
	}

	removed, err := h.shopping.ClearChecked(list.ID)
	if err != nil {
		h.logger.Error("clear checked", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear items")
		return
	}

	h.hub.Broadcast(list.HouseholdID, websocket.NewMessage("shopping_list", "cleared", list.ID, map[string]any{"removed": removed}))
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *ShoppingHandler) ownedList(w http.ResponseWriter, r *http.Request, id int64) (*model.ShoppingList, bool) {
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return nil, false
	}

	list, err := h.shopping.GetList(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load list")
		return nil, false
	}
	if list == nil || list.HouseholdID != auth.HouseholdID(r.Context()) {
		writeError(w, http.StatusNotFound, "list not found")
		return nil, false
	}
	return list, true
}

func (h *ShoppingHandler) ownedItem(w http.ResponseWriter, r *http.Request) (*model.ShoppingItem, *model.ShoppingList, bool) {
	id := parsePathID(r, "id")
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, nil, false
	}

	item, err := h.shopping.GetItem(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load item")
		return nil, nil, false
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return nil, nil, false
	}

	list, ok := h.ownedList(w, r, item.ListID)
	if !ok {
		return nil, nil, false
	}
	return item, list, true
}

func (h *ShoppingHandler) userName(id int64) string {
	if user, err := h.users.GetByID(id); err == nil && user != nil {
		return user.Name
	}
	return ""
}

func parsePathID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
