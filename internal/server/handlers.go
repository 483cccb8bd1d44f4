package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/billsyncorg/billsync/internal/middleware"
	"github.com/billsyncorg/billsync/internal/service"
)

// Handlers bundles the HTTP handlers over the service layer.
type Handlers struct {
	users    *service.UserService
	groups   *service.GroupService
	expenses *service.ExpenseService
}

// NewHandlers creates the handler set.
func NewHandlers(users *service.UserService, groups *service.GroupService, expenses *service.ExpenseService) *Handlers {
	return &Handlers{users: users, groups: groups, expenses: expenses}
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Account created successfully!", user)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.users.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Login successful!", resp)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), middleware.GetToken(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Logout successful!", nil)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	identity := struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}{
		UserID: middleware.GetUserID(r.Context()),
		Email:  middleware.GetEmail(r.Context()),
	}
	writeJSON(w, http.StatusOK, "Successful!", identity)
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Successful!", users)
}

func (h *Handlers) findUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchValue string `json:"searchValue"`
	}
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.users.FindUser(r.Context(), req.SearchValue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Successful!", user)
}

func (h *Handlers) createGroup(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGroupRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Successful!", group)
}

func (h *Handlers) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateGroupRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	group, err := h.groups.UpdateGroup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Updated successfully!", group)
}

func (h *Handlers) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Successful!", group)
}

func (h *Handlers) addExpense(w http.ResponseWriter, r *http.Request) {
	var req service.AddExpenseRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	expense, err := h.expenses.AddExpense(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Expense added successfully!", expense)
}

func (h *Handlers) listExpensesByGroup(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListExpensesByGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Successful!", expenses)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "ok", nil)
}
