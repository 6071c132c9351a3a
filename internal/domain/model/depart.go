//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/openlibms/libms/internal/errors"
)

const (
	maxDepartIDLen   = 20
	maxDepartNameLen = 50
)

// Depart represents an organizational unit. Departments form a tree via
// ParentDepartid; a nil parent marks a root department.
type Depart struct {
	Departid       string    `json:"departid"                 db:"departid"`
	Departname     string    `json:"departname"               db:"departname"`
	ParentDepartid *string   `json:"parentdepartid,omitempty" db:"parentdepartid"`
	CreatedAt      time.Time `json:"created_at"               db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"               db:"updated_at"`
}

// Normalize trims identifiers and converts an empty parent reference to nil.
func (d *Depart) Normalize() {
	d.Departid = strings.TrimSpace(d.Departid)
	d.Departname = strings.TrimSpace(d.Departname)
	d.ParentDepartid = emptyToNil(d.ParentDepartid)
}

// Validate validates a Depart for insert or full update.
func (d *Depart) Validate() error {
	if strings.TrimSpace(d.Departid) == "" {
		return apperrors.ValidationField("departid", "departid is required")
	}
	if utf8.RuneCountInString(d.Departid) > maxDepartIDLen {
		return apperrors.ValidationField("departid", "departid cannot exceed 20 characters")
	}
	if strings.TrimSpace(d.Departname) == "" {
		return apperrors.ValidationField("departname", "departname is required")
	}
	if utf8.RuneCountInString(d.Departname) > maxDepartNameLen {
		return apperrors.ValidationField("departname", "departname cannot exceed 50 characters")
	}
	if d.ParentDepartid != nil && strings.TrimSpace(*d.ParentDepartid) == d.Departid {
		return apperrors.ValidationField("parentdepartid", "a department cannot be its own parent")
	}
	return nil
}
