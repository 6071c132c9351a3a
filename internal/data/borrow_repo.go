package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/openlibms/libms/internal/core"
	"github.com/openlibms/libms/internal/data/pgxutil"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// BorrowRepo provides database operations for borrow records. Records are
// keyed by the (userid, bookid) pair.
type BorrowRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBorrowRepo creates a new BorrowRepo with real time provider.
func NewBorrowRepo(db *sql.DB) *BorrowRepo {
	return &BorrowRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBorrowRepoWithTimeProvider creates a new BorrowRepo with a custom time provider (useful for tests).
func NewBorrowRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BorrowRepo {
	return &BorrowRepo{DB: db, timeProvider: tp}
}

const (
	borrowInsertQuery = `
		INSERT INTO borrows (userid, bookid, borrowtime, returntime, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING userid, bookid, borrowtime, returntime, status`

	borrowGetByKeyQuery = `
		SELECT userid, bookid, borrowtime, returntime, status
		FROM borrows
		WHERE userid = $1 AND bookid = $2`

	borrowListQuery = `
		SELECT userid, bookid, borrowtime, returntime, status
		FROM borrows
		ORDER BY borrowtime DESC`

	borrowPageQuery = `
		SELECT userid, bookid, borrowtime, returntime, status
		FROM borrows
		WHERE $1 = '' OR userid ILIKE '%' || $1 || '%' OR bookid ILIKE '%' || $1 || '%'
		ORDER BY borrowtime DESC
		LIMIT $2 OFFSET $3`

	borrowCountQuery = `
		SELECT count(*)
		FROM borrows
		WHERE $1 = '' OR userid ILIKE '%' || $1 || '%' OR bookid ILIKE '%' || $1 || '%'`

	borrowUpdateQuery = `
		UPDATE borrows
		SET borrowtime = $3, returntime = $4, status = $5
		WHERE userid = $1 AND bookid = $2
		RETURNING userid, bookid, borrowtime, returntime, status`

	borrowDeleteQuery = `DELETE FROM borrows WHERE userid = $1 AND bookid = $2`
)

// Create inserts a new borrow record. A zero BorrowTime defaults to the
// current time. Missing user or book rows surface as foreign key errors;
// a duplicate (userid, bookid) pair surfaces as a conflict.
func (r *BorrowRepo) Create(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	borrowTime := b.BorrowTime
	if borrowTime.IsZero() {
		borrowTime = r.timeProvider.Now().UTC()
	}

	var out model.Borrow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, borrowInsertQuery,
			b.Userid, b.Bookid, borrowTime, b.ReturnTime, b.Status)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByKey retrieves a borrow record by its composite key.
func (r *BorrowRepo) GetByKey(ctx context.Context, key core.BorrowKey) (*model.Borrow, error) {
	var out model.Borrow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, borrowGetByKeyQuery, key.Userid, key.Bookid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrow])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("borrow record not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves all borrow records, most recent first.
func (r *BorrowRepo) List(ctx context.Context) ([]*model.Borrow, error) {
	var rowsOut []model.Borrow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, borrowListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Borrow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), nil
}

// Page retrieves one page of borrow records whose user or book matches the keyword.
func (r *BorrowRepo) Page(ctx context.Context, opts model.PageOptions) ([]*model.Borrow, int64, error) {
	opts = opts.Normalized()
	var (
		rowsOut []model.Borrow
		total   int64
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, borrowPageQuery, opts.Keyword, opts.Size, opts.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()
		if rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Borrow]); err != nil {
			return err
		}
		return conn.QueryRow(ctx, borrowCountQuery, opts.Keyword).Scan(&total)
	})
	if err != nil {
		return nil, 0, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), total, nil
}

// Update replaces the mutable fields of a borrow record.
func (r *BorrowRepo) Update(ctx context.Context, b *model.Borrow) (*model.Borrow, error) {
	var out model.Borrow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, borrowUpdateQuery,
			b.Userid, b.Bookid, b.BorrowTime, b.ReturnTime, b.Status)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrow])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("borrow record not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a borrow record by its composite key.
func (r *BorrowRepo) Delete(ctx context.Context, key core.BorrowKey) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, borrowDeleteQuery, key.Userid, key.Bookid)
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
		return apperrors.NotFound("borrow record not found")
	}
	return nil
}
