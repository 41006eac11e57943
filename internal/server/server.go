package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rbeckett/hearth/internal/config"
	"github.com/rbeckett/hearth/internal/dashboard"
	"github.com/rbeckett/hearth/internal/handler"
	"github.com/rbeckett/hearth/internal/middleware"
	"github.com/rbeckett/hearth/internal/store"
	ws "github.com/rbeckett/hearth/internal/websocket"
)

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	authH          *handler.AuthHandler
	householdH     *handler.HouseholdHandler
	taskH          *handler.TaskHandler
	shoppingH      *handler.ShoppingHandler
	financeH       *handler.FinanceHandler
	landingH       *handler.LandingHandler
	activityH      *handler.ActivityHandler
	sessionStore   *store.SessionStore
	householdStore *store.HouseholdStore
	rateLimiter    *middleware.RateLimiter
	logger         *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	householdStore := store.NewHouseholdStore(db)
	sessionStore := store.NewSessionStore(db)
	taskStore := store.NewTaskStore(db)
	shoppingStore := store.NewShoppingStore(db)
	financeStore := store.NewFinanceStore(db)
	eventStore := store.NewEventStore(db)

	opts := dashboard.Options{Currency: cfg.Currency, Locale: cfg.Locale}

	return &Server{
		db:             db,
		hub:            hub,
		authH:          handler.NewAuthHandler(userStore, householdStore, sessionStore, logger),
		householdH:     handler.NewHouseholdHandler(householdStore, userStore, sessionStore, eventStore, hub, logger),
		taskH:          handler.NewTaskHandler(taskStore, eventStore, userStore, hub, logger),
		shoppingH:      handler.NewShoppingHandler(shoppingStore, eventStore, userStore, hub, logger),
		financeH:       handler.NewFinanceHandler(financeStore, householdStore, eventStore, userStore, hub, cfg.Currency, logger),
		landingH:       handler.NewLandingHandler(householdStore, userStore, taskStore, financeStore, eventStore, hub, opts, logger),
		activityH:      handler.NewActivityHandler(eventStore, logger),
		sessionStore:   sessionStore,
		householdStore: householdStore,
		rateLimiter:    middleware.NewRateLimiter(),
		logger:         logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.householdStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Household
	mux.HandleFunc("GET /api/household", s.householdH.Get)
	mux.HandleFunc("POST /api/households", s.householdH.Create)
	mux.HandleFunc("GET /api/households", s.householdH.ListMine)
	mux.HandleFunc("POST /api/households/join", s.householdH.Join)
	mux.HandleFunc("POST /api/households/{id}/switch", s.householdH.SwitchHousehold)
	mux.Handle("POST /api/household/invite-code", middleware.RequireOwner(http.HandlerFunc(s.householdH.RegenerateInviteCode)))
	mux.HandleFunc("GET /api/household/members", s.householdH.Members)
	mux.Handle("PUT /api/household/members/{id}/role", middleware.RequireOwner(http.HandlerFunc(s.householdH.UpdateMemberRole)))

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)
	mux.HandleFunc("POST /api/tasks/{id}/skip", s.taskH.Skip)

	// Shopping
	mux.HandleFunc("GET /api/shopping-lists", s.shoppingH.Lists)
	mux.HandleFunc("POST /api/shopping-lists", s.shoppingH.CreateList)
	mux.HandleFunc("DELETE /api/shopping-lists/{id}", s.shoppingH.DeleteList)
	mux.HandleFunc("GET /api/shopping-lists/{list_id}/items", s.shoppingH.Items)
	mux.HandleFunc("POST /api/shopping-lists/{list_id}/items", s.shoppingH.CreateItem)
	mux.HandleFunc("POST /api/shopping-lists/{list_id}/items/{id}/check", s.shoppingH.SetChecked)
	mux.HandleFunc("DELETE /api/shopping-lists/{list_id}/items/{id}", s.shoppingH.DeleteItem)
	mux.HandleFunc("POST /api/shopping-lists/{list_id}/clear-checked", s.shoppingH.ClearChecked)

	// Finance
	mux.HandleFunc("GET /api/finance/entries", s.financeH.Entries)
	mux.HandleFunc("POST /api/finance/entries", s.financeH.CreateEntry)
	mux.HandleFunc("DELETE /api/finance/entries/{id}", s.financeH.DeleteEntry)
	mux.HandleFunc("GET /api/finance/balances", s.financeH.Balances)
	mux.HandleFunc("GET /api/finance/monthly", s.financeH.Monthly)
	mux.HandleFunc("GET /api/finance/audits", s.financeH.Audits)
	mux.HandleFunc("POST /api/finance/audits", s.financeH.RequestAudit)

	// Landing page
	mux.HandleFunc("GET /api/landing", s.landingH.Page)
	mux.HandleFunc("GET /api/landing/editor", s.landingH.Editor)
	mux.HandleFunc("PUT /api/landing", s.landingH.Update)
	mux.HandleFunc("GET /api/widgets/{key}", s.landingH.Widget)

	// Activity feed
	mux.HandleFunc("GET /api/activity", s.activityH.Recent)

	// WebSocket for live updates
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))
}
