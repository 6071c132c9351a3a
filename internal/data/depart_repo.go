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

// DepartRepo provides database operations for departments.
type DepartRepo struct {
	DB *sql.DB
}

// NewDepartRepo creates a new DepartRepo.
func NewDepartRepo(db *sql.DB) *DepartRepo {
	return &DepartRepo{DB: db}
}

const (
	departInsertQuery = `
		INSERT INTO departs (departid, departname, parentdepartid)
		VALUES ($1, $2, $3)
		RETURNING departid, departname, parentdepartid, created_at, updated_at`

	departGetByIDQuery = `
		SELECT departid, departname, parentdepartid, created_at, updated_at
		FROM departs
		WHERE departid = $1`

	departListQuery = `
		SELECT departid, departname, parentdepartid, created_at, updated_at
		FROM departs
		ORDER BY departid`

	departPageQuery = `
		SELECT departid, departname, parentdepartid, created_at, updated_at
		FROM departs
		WHERE $1 = '' OR departname ILIKE '%' || $1 || '%'
		ORDER BY departid
		LIMIT $2 OFFSET $3`

	departCountQuery = `
		SELECT count(*)
		FROM departs
		WHERE $1 = '' OR departname ILIKE '%' || $1 || '%'`

	departUpdateQuery = `
		UPDATE departs
		SET departname = $2, parentdepartid = $3, updated_at = now()
		WHERE departid = $1
		RETURNING departid, departname, parentdepartid, created_at, updated_at`

	departDeleteQuery = `DELETE FROM departs WHERE departid = $1`
)

// Create inserts a new department.
func (r *DepartRepo) Create(ctx context.Context, d *model.Depart) (*model.Depart, error) {
	var out model.Depart
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departInsertQuery, d.Departid, d.Departname, d.ParentDepartid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Depart])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a department by departid.
func (r *DepartRepo) GetByID(ctx context.Context, departid string) (*model.Depart, error) {
	var out model.Depart
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departGetByIDQuery, departid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Depart])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("department not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves all departments ordered by departid.
func (r *DepartRepo) List(ctx context.Context) ([]*model.Depart, error) {
	var rowsOut []model.Depart
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Depart])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), nil
}

// Page retrieves one page of departments whose name matches the keyword.
func (r *DepartRepo) Page(ctx context.Context, opts model.PageOptions) ([]*model.Depart, int64, error) {
	opts = opts.Normalized()
	var (
		rowsOut []model.Depart
		total   int64
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departPageQuery, opts.Keyword, opts.Size, opts.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()
		if rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Depart]); err != nil {
			return err
		}
		return conn.QueryRow(ctx, departCountQuery, opts.Keyword).Scan(&total)
	})
	if err != nil {
		return nil, 0, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), total, nil
}

// Update replaces all mutable fields of a department.
func (r *DepartRepo) Update(ctx context.Context, d *model.Depart) (*model.Depart, error) {
	var out model.Depart
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departUpdateQuery, d.Departid, d.Departname, d.ParentDepartid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Depart])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("department not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a department. Users or child departments referencing it
// block the delete via FK constraints.
func (r *DepartRepo) Delete(ctx context.Context, departid string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, departDeleteQuery, departid)
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
		return apperrors.NotFound("department not found")
	}
	return nil
}
