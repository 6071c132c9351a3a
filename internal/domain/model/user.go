//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/openlibms/libms/internal/errors"
)

const (
	maxUserIDLen   = 20
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 20
)

// User represents a library account. Password holds the stored credential
// and is blanked before the struct leaves the service layer.
type User struct {
	Userid    string    `json:"userid"             db:"userid"`
	Username  string    `json:"username"           db:"username"`
	Password  string    `json:"password,omitempty" db:"password"`
	Phonenum  *string   `json:"phonenum,omitempty" db:"phonenum"`
	Sex       *string   `json:"sex,omitempty"      db:"sex"`
	Role      string    `json:"role"               db:"role"`
	Departid  *string   `json:"departid,omitempty" db:"departid"`
	CreatedAt time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"         db:"updated_at"`
}

// Sanitized returns a copy with the stored credential removed.
func (u User) Sanitized() *User {
	u.Password = ""
	return &u
}

// Normalize trims identifiers and converts empty optional references to nil
// so foreign keys see NULL instead of "".
func (u *User) Normalize() {
	u.Userid = strings.TrimSpace(u.Userid)
	u.Username = strings.TrimSpace(u.Username)
	u.Departid = emptyToNil(u.Departid)
}

// Validate checks identifier requirements shared by registration and
// administrative creation. Password rules are checked separately because
// updates may omit the password to keep the stored one.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Userid) == "" {
		return apperrors.ValidationField("userid", "userid is required")
	}
	if utf8.RuneCountInString(u.Userid) > maxUserIDLen {
		return apperrors.ValidationField("userid", "userid cannot exceed 20 characters")
	}
	if strings.TrimSpace(u.Username) == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if utf8.RuneCountInString(u.Username) > maxUsernameLen {
		return apperrors.ValidationField("username", "username cannot exceed 50 characters")
	}
	return nil
}

// ValidatePassword enforces the credential length bounds.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return apperrors.ValidationField("password", "password must be between 6 and 20 characters")
	}
	return nil
}

// RegisterRequest carries the self-service registration payload.
type RegisterRequest struct {
	Userid          string `json:"userid"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phonenum        string `json:"phonenum"`
	Sex             string `json:"sex"`
	Departid        string `json:"departid"`
}

// Validate checks field presence and bounds. The password/confirm match is a
// precondition of the registration flow, not a field rule, so it lives in the
// auth service.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Userid) == "" {
		return apperrors.ValidationField("userid", "userid is required")
	}
	if utf8.RuneCountInString(r.Userid) > maxUserIDLen {
		return apperrors.ValidationField("userid", "userid cannot exceed 20 characters")
	}
	if strings.TrimSpace(r.Username) == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if utf8.RuneCountInString(r.Username) > maxUsernameLen {
		return apperrors.ValidationField("username", "username cannot exceed 50 characters")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.ConfirmPassword == "" {
		return apperrors.ValidationField("confirmPassword", "confirm password is required")
	}
	return nil
}

// User converts the request into a User with optional fields normalized.
// The password is carried verbatim; the auth service encodes it.
func (r *RegisterRequest) User() *User {
	u := &User{
		Userid:   strings.TrimSpace(r.Userid),
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
		Phonenum: stringToNil(r.Phonenum),
		Sex:      stringToNil(r.Sex),
		Departid: stringToNil(r.Departid),
	}
	return u
}

// LoginRequest carries the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks field presence.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

// ChangePasswordRequest carries the change-password payload for the
// currently authenticated user.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks field presence and the new credential's bounds.
func (r *ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return apperrors.ValidationField("oldPassword", "old password is required")
	}
	if r.NewPassword == "" {
		return apperrors.ValidationField("newPassword", "new password is required")
	}
	if err := ValidatePassword(r.NewPassword); err != nil {
		return apperrors.ValidationField("newPassword", "new password must be between 6 and 20 characters")
	}
	if r.NewPassword != r.ConfirmPassword {
		return apperrors.ValidationField("confirmPassword", "new password and confirmation do not match")
	}
	return nil
}

// emptyToNil maps a pointer to an empty or whitespace string to nil.
func emptyToNil(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// stringToNil maps an empty string to nil, otherwise to a pointer.
func stringToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
