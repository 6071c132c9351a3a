package core

import (
	"context"

	"github.com/openlibms/libms/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user data operations.
// The database enforces userid and username uniqueness; Create surfaces
// violations as conflict errors.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userid string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Page(ctx context.Context, opts model.PageOptions) ([]*model.User, int64, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	UpdatePassword(ctx context.Context, userid, encoded string) error
	Delete(ctx context.Context, userid string) error
}

// BookRepository defines the interface for book data operations.
type BookRepository interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, bookid string) (*model.Book, error)
	List(ctx context.Context) ([]*model.Book, error)
	Page(ctx context.Context, opts model.PageOptions) ([]*model.Book, int64, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, bookid string) error
}

// DepartRepository defines the interface for department data operations.
type DepartRepository interface {
	Create(ctx context.Context, d *model.Depart) (*model.Depart, error)
	GetByID(ctx context.Context, departid string) (*model.Depart, error)
	List(ctx context.Context) ([]*model.Depart, error)
	Page(ctx context.Context, opts model.PageOptions) ([]*model.Depart, int64, error)
	Update(ctx context.Context, d *model.Depart) (*model.Depart, error)
	Delete(ctx context.Context, departid string) error
}

// BorrowKey identifies a borrow record by its composite primary key.
type BorrowKey struct {
	Userid string
	Bookid string
}

// BorrowRepository defines the interface for borrow record data operations.
type BorrowRepository interface {
	Create(ctx context.Context, b *model.Borrow) (*model.Borrow, error)
	GetByKey(ctx context.Context, key BorrowKey) (*model.Borrow, error)
	List(ctx context.Context) ([]*model.Borrow, error)
	Page(ctx context.Context, opts model.PageOptions) ([]*model.Borrow, int64, error)
	Update(ctx context.Context, b *model.Borrow) (*model.Borrow, error)
	Delete(ctx context.Context, key BorrowKey) error
}
