//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/openlibms/libms/internal/errors"
)

const (
	maxBookIDLen   = 20
	maxBookNameLen = 100
)

// Book represents a catalog entry. Stock counts the copies currently
// available for borrowing.
type Book struct {
	Bookid    string    `json:"bookid"           db:"bookid"`
	Bookname  string    `json:"bookname"         db:"bookname"`
	Author    *string   `json:"author,omitempty" db:"author"`
	Press     *string   `json:"press,omitempty"  db:"press"`
	Price     *float64  `json:"price,omitempty"  db:"price"`
	Stock     int       `json:"stock"            db:"stock"`
	CreatedAt time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"       db:"updated_at"`
}

// Normalize trims identifier and title fields.
func (b *Book) Normalize() {
	b.Bookid = strings.TrimSpace(b.Bookid)
	b.Bookname = strings.TrimSpace(b.Bookname)
	b.Author = emptyToNil(b.Author)
	b.Press = emptyToNil(b.Press)
}

// Validate validates a Book for insert or full update.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Bookid) == "" {
		return apperrors.ValidationField("bookid", "bookid is required")
	}
	if utf8.RuneCountInString(b.Bookid) > maxBookIDLen {
		return apperrors.ValidationField("bookid", "bookid cannot exceed 20 characters")
	}
	if strings.TrimSpace(b.Bookname) == "" {
		return apperrors.ValidationField("bookname", "bookname is required")
	}
	if utf8.RuneCountInString(b.Bookname) > maxBookNameLen {
		return apperrors.ValidationField("bookname", "bookname cannot exceed 100 characters")
	}
	if b.Price != nil && *b.Price < 0 {
		return apperrors.ValidationField("price", "price cannot be negative")
	}
	if b.Stock < 0 {
		return apperrors.ValidationField("stock", "stock cannot be negative")
	}
	return nil
}
