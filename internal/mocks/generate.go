// Package mocks provides mock implementations for testing the library system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByUsername, List, Page, Update, UpdatePassword, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/openlibms/libms/internal/core UserRepository

// Generate mock for BookRepository interface from internal/core package.
// This creates MockBookRepository with methods for all BookRepository interface methods:
// Create, GetByID, List, Page, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=book_repository_mock.go github.com/openlibms/libms/internal/core BookRepository

// Generate mock for DepartRepository interface from internal/core package.
// This creates MockDepartRepository with methods for all DepartRepository interface methods:
// Create, GetByID, List, Page, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=depart_repository_mock.go github.com/openlibms/libms/internal/core DepartRepository

// Generate mock for BorrowRepository interface from internal/core package.
// This creates MockBorrowRepository with methods for all BorrowRepository interface methods:
// Create, GetByKey, List, Page, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=borrow_repository_mock.go github.com/openlibms/libms/internal/core BorrowRepository
