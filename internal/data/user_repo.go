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

// UserRepo provides database operations for library accounts.
// Uniqueness of userid and username is enforced by the schema; violations
// surface as conflict errors.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	userInsertQuery = `
		INSERT INTO users (userid, username, password, phonenum, sex, role, departid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING userid, username, password, phonenum, sex, role, departid, created_at, updated_at`

	userGetByIDQuery = `
		SELECT userid, username, password, phonenum, sex, role, departid, created_at, updated_at
		FROM users
		WHERE userid = $1`

	userGetByUsernameQuery = `
		SELECT userid, username, password, phonenum, sex, role, departid, created_at, updated_at
		FROM users
		WHERE username = $1`

	userListQuery = `
		SELECT userid, username, password, phonenum, sex, role, departid, created_at, updated_at
		FROM users
		ORDER BY userid`

	userPageQuery = `
		SELECT userid, username, password, phonenum, sex, role, departid, created_at, updated_at
		FROM users
		WHERE $1 = '' OR userid ILIKE '%' || $1 || '%' OR username ILIKE '%' || $1 || '%'
		ORDER BY userid
		LIMIT $2 OFFSET $3`

	userCountQuery = `
		SELECT count(*)
		FROM users
		WHERE $1 = '' OR userid ILIKE '%' || $1 || '%' OR username ILIKE '%' || $1 || '%'`

	userUpdateQuery = `
		UPDATE users
		SET username = $2, password = $3, phonenum = $4, sex = $5, role = $6, departid = $7, updated_at = now()
		WHERE userid = $1
		RETURNING userid, username, password, phonenum, sex, role, departid, created_at, updated_at`

	userUpdatePasswordQuery = `
		UPDATE users
		SET password = $2, updated_at = now()
		WHERE userid = $1`

	userDeleteQuery = `DELETE FROM users WHERE userid = $1`
)

// Create inserts a new user. The caller is responsible for encoding the
// password and applying the role default before calling.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userInsertQuery,
			u.Userid, u.Username, u.Password, u.Phonenum, u.Sex, u.Role, u.Departid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by userid.
func (r *UserRepo) GetByID(ctx context.Context, userid string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, userid)
}

// GetByUsername retrieves a user by username. The login flow relies on this
// returning the stored credential untouched.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByUsernameQuery, username)
}

// List retrieves all users ordered by userid.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	var rowsOut []model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), nil
}

// Page retrieves one page of users matching the keyword, plus the total match count.
func (r *UserRepo) Page(ctx context.Context, opts model.PageOptions) ([]*model.User, int64, error) {
	opts = opts.Normalized()
	var (
		rowsOut []model.User
		total   int64
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userPageQuery, opts.Keyword, opts.Size, opts.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()
		if rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User]); err != nil {
			return err
		}
		return conn.QueryRow(ctx, userCountQuery, opts.Keyword).Scan(&total)
	})
	if err != nil {
		return nil, 0, apperrors.MapDBError(err)
	}
	return toPtrSlice(rowsOut), total, nil
}

// Update replaces all mutable fields of a user.
func (r *UserRepo) Update(ctx context.Context, u *model.User) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userUpdateQuery,
			u.Userid, u.Username, u.Password, u.Phonenum, u.Sex, u.Role, u.Departid)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpdatePassword stores a newly encoded credential for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, userid, encoded string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, userUpdatePasswordQuery, userid, encoded)
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
		return apperrors.NotFound("user not found")
	}
	return nil
}

// Delete removes a user by userid.
func (r *UserRepo) Delete(ctx context.Context, userid string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, userDeleteQuery, userid)
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
		return apperrors.NotFound("user not found")
	}
	return nil
}

// getByQuery executes a single-row query and maps the empty result to a
// domain not-found error.
func (r *UserRepo) getByQuery(ctx context.Context, q string, arg string) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// toPtrSlice converts a value slice into the pointer slice repositories return.
func toPtrSlice[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}
