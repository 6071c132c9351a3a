//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	apperrors "github.com/openlibms/libms/internal/errors"
)

// BorrowStatus tracks the lifecycle of a borrow record.
type BorrowStatus string

const (
	BorrowStatusBorrowed BorrowStatus = "borrowed"
	BorrowStatusReturned BorrowStatus = "returned"
)

// Valid reports whether the borrow status is supported.
func (s BorrowStatus) Valid() bool {
	switch s {
	case BorrowStatusBorrowed, BorrowStatusReturned:
		return true
	default:
		return false
	}
}

// normalizeBorrowStatus trims and lowercases the input, defaulting to
// borrowed when empty.
func normalizeBorrowStatus(s BorrowStatus) BorrowStatus {
	normalized := BorrowStatus(strings.ToLower(strings.TrimSpace(string(s))))
	if normalized == "" {
		return BorrowStatusBorrowed
	}
	return normalized
}

// Borrow represents one loan of a book to a user. The pair (Userid, Bookid)
// identifies the record.
type Borrow struct {
	Userid     string       `json:"userid"               db:"userid"`
	Bookid     string       `json:"bookid"               db:"bookid"`
	BorrowTime time.Time    `json:"borrowtime"           db:"borrowtime"`
	ReturnTime *time.Time   `json:"returntime,omitempty" db:"returntime"`
	Status     BorrowStatus `json:"status"               db:"status"`
}

// Normalize trims key fields and applies the status default.
func (b *Borrow) Normalize() {
	b.Userid = strings.TrimSpace(b.Userid)
	b.Bookid = strings.TrimSpace(b.Bookid)
	b.Status = normalizeBorrowStatus(b.Status)
}

// Validate validates a Borrow for insert or full update. Normalize must run
// first so the status default is in place.
func (b *Borrow) Validate() error {
	if b.Userid == "" {
		return apperrors.ValidationField("userid", "userid is required")
	}
	if b.Bookid == "" {
		return apperrors.ValidationField("bookid", "bookid is required")
	}
	if !b.Status.Valid() {
		return apperrors.ValidationField("status", "status must be borrowed or returned")
	}
	if b.ReturnTime != nil && !b.BorrowTime.IsZero() && b.ReturnTime.Before(b.BorrowTime) {
		return apperrors.ValidationField("returntime", "returntime cannot precede borrowtime")
	}
	return nil
}
