package httpx

import (
	"net/http"

	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/service"
)

// UserHandlers provides HTTP handlers for user management.
type UserHandlers struct {
	Svc *service.UserService
}

// Get returns a single user by id.
// GET /users/{userid}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Svc.GetByID(r.Context(), r.PathValue("userid"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, user)
}

// List returns all users.
// GET /users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, users)
}

// Page returns a keyword-filtered page of users.
// GET /users/page?keyword=&page=&size=.
func (h *UserHandlers) Page(w http.ResponseWriter, r *http.Request) {
	opts := pageOptionsFromRequest(r)
	users, total, err := h.Svc.Page(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, model.NewPageResult(users, total, opts))
}

// Create adds a new user.
// POST /users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if !DecodeJSON(w, r, &user) {
		return
	}

	created, err := h.Svc.Create(r.Context(), &user)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, created)
}

// Update replaces an existing user.
// PUT /users/{userid}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if !DecodeJSON(w, r, &user) {
		return
	}
	if user.Userid != r.PathValue("userid") {
		WriteAppError(w, apperrors.ValidationField("userid", "userid in path does not match request body"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), &user)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, updated)
}

// Delete removes a user.
// DELETE /users/{userid}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("userid")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteMessage(w, "user deleted")
}
