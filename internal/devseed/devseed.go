package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/openlibms/libms/internal/data"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB      *sql.DB
	users   *service.UserService
	books   *service.BookService
	departs *service.DepartService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:      db,
		users:   service.NewUserService(service.UserServiceOptions{Users: data.NewUserRepo(db)}),
		books:   service.NewBookService(service.BookServiceOptions{Books: data.NewBookRepo(db)}),
		departs: service.NewDepartService(service.DepartServiceOptions{Departs: data.NewDepartRepo(db)}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: rows that already exist are left untouched.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	failures += seedDeparts(ctx, svcs.departs, logger)
	failures += seedUsers(ctx, svcs.users, logger)
	failures += seedBooks(ctx, svcs.books, logger)
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedDeparts(ctx context.Context, svc *service.DepartService, logger *slog.Logger) int {
	failures := 0
	departs := []*model.Depart{
		{Departid: "d001", Departname: "Library Administration"},
		{Departid: "d002", Departname: "Computer Science"},
		{Departid: "d003", Departname: "Mathematics"},
	}

	for _, d := range departs {
		_, err := svc.Create(ctx, d)
		if err != nil && !apperrors.IsConflict(err) {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed department", "departid", d.Departid, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "department already exists"
			if err == nil {
				msg = "department seeded"
			}
			logger.InfoContext(ctx, msg, "departid", d.Departid)
		}
	}
	return failures
}

func seedUsers(ctx context.Context, svc *service.UserService, logger *slog.Logger) int {
	failures := 0
	adminDepart := "d001"
	users := []*model.User{
		{Userid: "admin", Username: "admin", Password: "admin123", Role: "admin", Departid: &adminDepart},
		{Userid: "u0001", Username: "reader", Password: "reader123"},
	}

	for _, u := range users {
		_, err := svc.Create(ctx, u)
		if err != nil && !apperrors.IsConflict(err) {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed user", "userid", u.Userid, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "user already exists"
			if err == nil {
				msg = "user seeded"
			}
			logger.InfoContext(ctx, msg, "userid", u.Userid)
		}
	}
	return failures
}

func seedBooks(ctx context.Context, svc *service.BookService, logger *slog.Logger) int {
	failures := 0
	books := []*model.Book{
		{Bookid: "b0001", Bookname: "The Go Programming Language", Author: strPtr("Donovan & Kernighan"), Press: strPtr("Addison-Wesley"), Price: floatPtr(39.99), Stock: 5},
		{Bookid: "b0002", Bookname: "Designing Data-Intensive Applications", Author: strPtr("Martin Kleppmann"), Press: strPtr("O'Reilly"), Price: floatPtr(44.50), Stock: 3},
		{Bookid: "b0003", Bookname: "Database System Concepts", Author: strPtr("Silberschatz"), Press: strPtr("McGraw-Hill"), Price: floatPtr(59.00), Stock: 2},
	}

	for _, b := range books {
		_, err := svc.Create(ctx, b)
		if err != nil && !apperrors.IsConflict(err) {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed book", "bookid", b.Bookid, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "book already exists"
			if err == nil {
				msg = "book seeded"
			}
			logger.InfoContext(ctx, msg, "bookid", b.Bookid)
		}
	}
	return failures
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
