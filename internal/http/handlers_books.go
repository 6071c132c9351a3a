package httpx

import (
	"net/http"

	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/service"
)

// BookHandlers provides HTTP handlers for the book catalog.
type BookHandlers struct {
	Svc *service.BookService
}

// Get returns a single book by id.
// GET /books/{bookid}.
func (h *BookHandlers) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.Svc.GetByID(r.Context(), r.PathValue("bookid"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, book)
}

// List returns all books.
// GET /books.
func (h *BookHandlers) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, books)
}

// Page returns a keyword-filtered page of books.
// GET /books/page?keyword=&page=&size=.
func (h *BookHandlers) Page(w http.ResponseWriter, r *http.Request) {
	opts := pageOptionsFromRequest(r)
	books, total, err := h.Svc.Page(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, model.NewPageResult(books, total, opts))
}

// Create adds a new book.
// POST /books.
func (h *BookHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var book model.Book
	if !DecodeJSON(w, r, &book) {
		return
	}

	created, err := h.Svc.Create(r.Context(), &book)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, created)
}

// Update replaces an existing book.
// PUT /books/{bookid}.
func (h *BookHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var book model.Book
	if !DecodeJSON(w, r, &book) {
		return
	}
	if book.Bookid != r.PathValue("bookid") {
		WriteAppError(w, apperrors.ValidationField("bookid", "bookid in path does not match request body"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), &book)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteData(w, updated)
}

// Delete removes a book.
// DELETE /books/{bookid}.
func (h *BookHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("bookid")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteMessage(w, "book deleted")
}
