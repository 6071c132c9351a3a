package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/openlibms/libms/internal/data/pgxutil"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// BookRepo provides database operations for the catalog.
type BookRepo struct {
	DB *sql.DB
}

// NewBookRepo creates a new BookRepo.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{DB: db}
}

const (
	bookInsertQuery = `
		INSERT INTO books (bookid, bookname, author, press, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING bookid, bookname, author, press, price, stock, created_at, updated_at`

	bookGetByIDQuery = `
		SELECT bookid, bookname, author, press, price, stock, created_at, updated_at
		FROM books
		WHERE bookid = $1`

	bookListQuery = `
		SELECT bookid, bookname, author, press, price, stock, created_at, updated_at
		FROM books
		ORDER BY bookid`

	bookPageQuery = `
		SELECT bookid, bookname, author, press, price, stock, created_at, updated_at
		FROM books
		WHERE $1 = '' OR bookname ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
		ORDER BY bookid
		LIMIT $2 OFFSET $3`

	bookCountQuery = `
		SELECT count(*)
		FROM books
		WHERE $1 = '' OR bookname ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'`

	bookUpdateQuery = `
		UPDATE books
		SET bookname = $2, author = $3, press = $4, price = $5, stock = $6, updated_at = now()
		WHERE bookid = $1
		RETURNING bookid, bookname, author, press, price, stock, created_at, updated_at`

	bookDeleteQuery = `DELETE FROM books WHERE bookid = $1`
)

// Create inserts a new catalog entry.
func (r *BookRepo) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	var out model.Book
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bookInsertQuery,
			b.Bookid, b.Bookname, b.Author, b.Press, b.Price, b.Stock)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a book by bookid.
func (r *BookRepo) GetByID(ctx context.Context, bookid string) (*model.Book, error) {
	var out model.Book
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bookGetByIDQuery, bookid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves all books ordered by bookid.
func (r *BookRepo) List(ctx context.Context) ([]*model.Book, error) {
	var rowsOut []model.Book
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bookListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), nil
}

// Page retrieves one page of books whose title or author matches the keyword.
func (r *BookRepo) Page(ctx context.Context, opts model.PageOptions) ([]*model.Book, int64, error) {
	opts = opts.Normalized()
	var (
		rowsOut []model.Book
		total   int64
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bookPageQuery, opts.Keyword, opts.Size, opts.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()
		if rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Book]); err != nil {
			return err
		}
		return conn.QueryRow(ctx, bookCountQuery, opts.Keyword).Scan(&total)
	})
	if err != nil {
		return nil, 0, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), total, nil
}

// Update replaces all mutable fields of a book.
func (r *BookRepo) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	var out model.Book
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bookUpdateQuery,
			b.Bookid, b.Bookname, b.Author, b.Press, b.Price, b.Stock)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a book by bookid. Open borrow records referencing the book
// block the delete via the FK constraint.
func (r *BookRepo) Delete(ctx context.Context, bookid string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, bookDeleteQuery, bookid)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound("book not found")
	}
	return nil
}
