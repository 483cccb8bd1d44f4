// Package server wires the HTTP surface: routing, the response envelope, and
// the translation of service errors onto the client/server fault split.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billsyncorg/billsync/internal/auth"
	"github.com/billsyncorg/billsync/internal/middleware"
)

// NewRouter builds the full route table. Everything under /api except signup
// and login requires a valid, non-blacklisted bearer token.
func NewRouter(h *Handlers, jwtManager *auth.JWTManager, blacklist middleware.TokenChecker) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/users/signup", h.signup).Methods(http.MethodPost)
	api.HandleFunc("/users/login", h.login).Methods(http.MethodPost)

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth(jwtManager, blacklist, writeError))

	authed.HandleFunc("/users/logout", h.logout).Methods(http.MethodPost)
	authed.HandleFunc("/users/me", h.me).Methods(http.MethodGet)
	authed.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	authed.HandleFunc("/users/find", h.findUser).Methods(http.MethodPost)

	authed.HandleFunc("/groups/create-group", h.createGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/update-group", h.updateGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{id}", h.getGroup).Methods(http.MethodGet)

	authed.HandleFunc("/expenses/add-expense", h.addExpense).Methods(http.MethodPost)
	authed.HandleFunc("/expenses/group/{id}", h.listExpensesByGroup).Methods(http.MethodGet)

	return r
}
