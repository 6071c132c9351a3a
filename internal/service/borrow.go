package service

import (
	"context"

	"github.com/openlibms/libms/internal/core"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// BorrowServiceOptions groups dependencies for BorrowService.
type BorrowServiceOptions struct {
	Borrows core.BorrowRepository
}

// BorrowService orchestrates borrow record management. Referential checks
// against users and books are left to the schema's foreign keys.
type BorrowService struct {
	borrows core.BorrowRepository
}

// NewBorrowService constructs a new BorrowService.
func NewBorrowService(opts BorrowServiceOptions) *BorrowService {
	return &BorrowService{borrows: opts.Borrows}
}

// Create inserts a new borrow record.
func (s *BorrowService) Create(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	if b == nil {
		return nil, apperrors.Validation("borrow record is required")
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return s.borrows.Create(ctx, b)
}

// GetByKey retrieves a borrow record by its composite key.
func (s *BorrowService) GetByKey(ctx context.Context, key core.BorrowKey) (*model.Borrow, error) {
	return s.borrows.GetByKey(ctx, key)
}

// List retrieves all borrow records.
func (s *BorrowService) List(ctx context.Context) ([]*model.Borrow, error) {
	return s.borrows.List(ctx)
}

// Page retrieves one page of borrow records matching the keyword.
func (s *BorrowService) Page(ctx context.Context, opts model.PageOptions) ([]*model.Borrow, int64, error) {
	return s.borrows.Page(ctx, opts)
}

// Update replaces a borrow record's fields.
func (s *BorrowService) Update(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	if b == nil {
		return nil, apperrors.Validation("borrow record is required")
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return s.borrows.Update(ctx, b)
}

// Delete removes a borrow record by its composite key.
func (s *BorrowService) Delete(ctx context.Context, key core.BorrowKey) error {
	return s.borrows.Delete(ctx, key)
}
