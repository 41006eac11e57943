package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rbeckett/hearth/internal/auth"
	"github.com/rbeckett/hearth/internal/model"
	"github.com/rbeckett/hearth/internal/store"
	"github.com/rbeckett/hearth/internal/task"
	"github.com/rbeckett/hearth/internal/websocket"
)

type TaskHandler struct {
	tasks  *store.TaskStore
	events *store.EventStore
	users  *store.UserStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, es *store.EventStore, us *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  ts,
		events: es,
		users:  us,
		hub:    hub,
		logger: logger.With("component", "task"),
	}
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Interval    int    `json:"interval"`
	AssignedTo  *int64 `json:"assigned_to"`
}

func (req *taskRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	switch req.Frequency {
	case "", model.FrequencyOnce:
		req.Frequency = model.FrequencyOnce
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
	default:
		return "frequency must be once, daily, weekly, or monthly"
	}
	if req.Interval < 1 {
		req.Interval = 1
	}
	return ""
}

// taskView is a task with its computed due status.
type taskView struct {
	model.Task
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(auth.HouseholdID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	today := time.Now()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		last, err := h.tasks.LastCompletion(t.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list tasks")
			return
		}
		status, due := task.ComputeStatus(t, last, today)
		views = append(views, taskView{Task: t, Status: string(status), DueDate: due})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	householdID := auth.HouseholdID(r.Context())
	t, err := h.tasks.Create(householdID, req.Title, req.Description, req.Frequency, req.Interval, req.AssignedTo)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("task", "created", t.ID, nil))
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	t, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.tasks.Update(t.ID, req.Title, req.Description, req.Frequency, req.Interval, req.AssignedTo)
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.hub.Broadcast(t.HouseholdID, websocket.NewMessage("task", "updated", t.ID, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(t.ID); err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.hub.Broadcast(t.HouseholdID, websocket.NewMessage("task", "deleted", t.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Complete records a completion for the authenticated user and emits a
// task_completed event.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.recordCompletion(w, r, false)
}

// Skip records a skipped occurrence. Skips advance the schedule without
// counting toward fairness.
func (h *TaskHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.recordCompletion(w, r, true)
}

func (h *TaskHandler) recordCompletion(w http.ResponseWriter, r *http.Request, skipped bool) {
	t, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	ac, _ := auth.FromContext(r.Context())
	completion, err := h.tasks.Complete(t.ID, &ac.UserID, skipped)
	if err != nil {
		h.logger.Error("record completion", "error", err, "skipped", skipped)
		writeError(w, http.StatusInternalServerError, "failed to record completion")
		return
	}

	eventType := model.EventTaskCompleted
	action := "completed"
	if skipped {
		eventType = model.EventTaskSkipped
		action = "skipped"
	}

	payload := map[string]string{"title": t.Title, "actor": h.userName(ac.UserID)}
	if _, err := h.events.Record(t.HouseholdID, eventType, &ac.UserID, payload); err != nil {
		h.logger.Error("record event", "error", err)
	}

	h.hub.Broadcast(t.HouseholdID, websocket.NewMessage("task", action, t.ID, nil))
	writeJSON(w, http.StatusCreated, completion)
}

// ownedTask loads the task behind the id param and verifies it belongs to
// the caller's household. Cross-household ids read as not found.
func (h *TaskHandler) ownedTask(w http.ResponseWriter, r *http.Request) (*model.Task, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	t, err := h.tasks.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load task")
		return nil, false
	}
	if t == nil || t.HouseholdID != auth.HouseholdID(r.Context()) {
		writeError(w, http.StatusNotFound, "task not found")
		return nil, false
	}
	return t, true
}

func (h *TaskHandler) userName(id int64) string {
	if user, err := h.users.GetByID(id); err == nil && user != nil {
		return user.Name
	}
	return ""
}
