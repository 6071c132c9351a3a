package httpx

import (
	"net/http"

	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/service"
)

// DepartHandlers provides HTTP handlers for departments.
type DepartHandlers struct {
	Svc *service.DepartService
}

// Get returns a single department by id.
// GET /departs/{departid}.
func (h *DepartHandlers) Get(w http.ResponseWriter, r *http.Request) {
	depart, err := h.Svc.GetByID(r.Context(), r.PathValue("departid"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, depart)
}

// List returns all departments.
// GET /departs.
func (h *DepartHandlers) List(w http.ResponseWriter, r *http.Request) {
	departs, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, departs)
}

// Page returns a keyword-filtered page of departments.
// GET /departs/page?keyword=&page=&size=.
func (h *DepartHandlers) Page(w http.ResponseWriter, r *http.Request) {
	opts := pageOptionsFromRequest(r)
	departs, total, err := h.Svc.Page(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, model.NewPageResult(departs, total, opts))
}

// Create adds a new department.
// POST /departs.
func (h *DepartHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var depart model.Depart
	if !DecodeJSON(w, r, &depart) {
		return
	}

	created, err := h.Svc.Create(r.Context(), &depart)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, created)
}

// Update replaces an existing department.
// PUT /departs/{departid}.
func (h *DepartHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var depart model.Depart
	if !DecodeJSON(w, r, &depart) {
		return
	}
	if depart.Departid != r.PathValue("departid") {
		WriteAppError(w, apperrors.ValidationField("departid", "departid in path does not match request body"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), &depart)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, updated)
}

// Delete removes a department.
// DELETE /departs/{departid}.
func (h *DepartHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("departid")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteMessage(w, "department deleted")
}
