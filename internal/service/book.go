package service

import (
	"context"

	"github.com/openlibms/libms/internal/core"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// BookServiceOptions groups dependencies for BookService.
type BookServiceOptions struct {
	Books core.BookRepository
}

// BookService orchestrates catalog management.
type BookService struct {
	books core.BookRepository
}

// NewBookService constructs a new BookService.
func NewBookService(opts BookServiceOptions) *BookService {
	return &BookService{books: opts.Books}
}

// Create inserts a new catalog entry.
func (s *BookService) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b == nil {
		return nil, apperrors.Validation("book is required")
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return s.books.Create(ctx, b)
}

// GetByID retrieves a book by bookid.
func (s *BookService) GetByID(ctx context.Context, bookid string) (*model.Book, error) {
	return s.books.GetByID(ctx, bookid)
}

// List retrieves all books.
func (s *BookService) List(ctx context.Context) ([]*model.Book, error) {
	return s.books.List(ctx)
}

// Page retrieves one page of books matching the keyword.
func (s *BookService) Page(ctx context.Context, opts model.PageOptions) ([]*model.Book, int64, error) {
	return s.books.Page(ctx, opts)
}

// Update replaces a book's fields.
func (s *BookService) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b == nil {
		return nil, apperrors.Validation("book is required")
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return s.books.Update(ctx, b)
}

// Delete removes a book by bookid.
func (s *BookService) Delete(ctx context.Context, bookid string) error {
	return s.books.Delete(ctx, bookid)
}
