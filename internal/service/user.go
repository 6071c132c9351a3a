package service

import (
	"context"
	"fmt"

	"github.com/openlibms/libms/internal/core"
	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
}

// UserService orchestrates administrative account management. Every user it
// returns has the stored credential blanked.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users}
}

// Create inserts a new account. A non-empty password is encoded before
// storage; an empty role defaults to the regular user role.
func (s *UserService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, apperrors.Validation("user is required")
	}
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if u.Password != "" {
		if err := model.ValidatePassword(u.Password); err != nil {
			return nil, err
		}
		encoded, err := domainauth.EncodePassword(u.Password)
		if err != nil {
			return nil, fmt.Errorf("encode password: %w", err)
		}
		u.Password = encoded
	}
	u.Role = string(domainauth.NormalizeRole(u.Role))

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	return created.Sanitized(), nil
}

// GetByID retrieves an account by userid.
func (s *UserService) GetByID(ctx context.Context, userid string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userid)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// List retrieves all accounts.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// Page retrieves one page of accounts matching the keyword.
func (s *UserService) Page(ctx context.Context, opts model.PageOptions) ([]*model.User, int64, error) {
	users, total, err := s.users.Page(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return sanitizeUsers(users), total, nil
}

// Update replaces an account's fields. An empty password keeps the stored
// credential; a non-empty one is encoded and replaces it.
func (s *UserService) Update(ctx context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, apperrors.Validation("user is required")
	}
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByID(ctx, u.Userid)
	if err != nil {
		return nil, err
	}

	if u.Password == "" {
		u.Password = existing.Password
	} else {
		if pwErr := model.ValidatePassword(u.Password); pwErr != nil {
			return nil, pwErr
		}
		encoded, encErr := domainauth.EncodePassword(u.Password)
		if encErr != nil {
			return nil, fmt.Errorf("encode password: %w", encErr)
		}
		u.Password = encoded
	}
	u.Role = string(domainauth.NormalizeRole(u.Role))

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// Delete removes an account by userid.
func (s *UserService) Delete(ctx context.Context, userid string) error {
	return s.users.Delete(ctx, userid)
}

func sanitizeUsers(users []*model.User) []*model.User {
	out := make([]*model.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out
}
