package httpx

import (
	"net/http"

	"github.com/openlibms/libms/internal/core"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/service"
)

// BorrowHandlers provides HTTP handlers for borrow records. Records are
// addressed by the (userid, bookid) pair.
type BorrowHandlers struct {
	Svc *service.BorrowService
}

func borrowKeyFromRequest(r *http.Request) core.BorrowKey {
	return core.BorrowKey{
		Userid: r.PathValue("userid"),
		Bookid: r.PathValue("bookid"),
	}
}

// Get returns a single borrow record.
// GET /borrows/{userid}/{bookid}.
func (h *BorrowHandlers) Get(w http.ResponseWriter, r *http.Request) {
	borrow, err := h.Svc.GetByKey(r.Context(), borrowKeyFromRequest(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, borrow)
}

// List returns all borrow records.
// GET /borrows.
func (h *BorrowHandlers) List(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, borrows)
}

// Page returns a keyword-filtered page of borrow records.
// GET /borrows/page?keyword=&page=&size=.
func (h *BorrowHandlers) Page(w http.ResponseWriter, r *http.Request) {
	opts := pageOptionsFromRequest(r)
	borrows, total, err := h.Svc.Page(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, model.NewPageResult(borrows, total, opts))
}

// Create adds a new borrow record.
// POST /borrows.
func (h *BorrowHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var borrow model.Borrow
	if !DecodeJSON(w, r, &borrow) {
		return
	}

	created, err := h.Svc.Create(r.Context(), &borrow)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, created)
}

// Update replaces an existing borrow record.
// PUT /borrows/{userid}/{bookid}.
func (h *BorrowHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var borrow model.Borrow
	if !DecodeJSON(w, r, &borrow) {
		return
	}
	key := borrowKeyFromRequest(r)
	if borrow.Userid != key.Userid || borrow.Bookid != key.Bookid {
		WriteAppError(w, apperrors.Validation("borrow key in path does not match request body"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), &borrow)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, updated)
}

// Delete removes a borrow record.
// DELETE /borrows/{userid}/{bookid}.
func (h *BorrowHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), borrowKeyFromRequest(r)); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteMessage(w, "borrow record deleted")
}
