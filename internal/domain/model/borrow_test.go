package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/openlibms/libms/internal/errors"
)

func TestBorrow_NormalizeDefaultsStatus(t *testing.T) {
	b := Borrow{Userid: " u1 ", Bookid: " b1 "}
	b.Normalize()
	assert.Equal(t, "u1", b.Userid)
	assert.Equal(t, "b1", b.Bookid)
	assert.Equal(t, BorrowStatusBorrowed, b.Status)

	b.Status = " Returned "
	b.Normalize()
	assert.Equal(t, BorrowStatusReturned, b.Status)
}

func TestBorrow_Validate(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	b := Borrow{Userid: "u1", Bookid: "b1", BorrowTime: now, Status: BorrowStatusBorrowed}
	assert.NoError(t, b.Validate())

	b.Status = "lost"
	err := b.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	b.Status = BorrowStatusReturned
	b.ReturnTime = &earlier
	err = b.Validate()
	require.Error(t, err)
	assert.Equal(t, "returntime", apperrors.GetField(err))
}

func TestBookAndDepartValidate(t *testing.T) {
	book := Book{Bookid: "b1", Bookname: "The Go Programming Language"}
	assert.NoError(t, book.Validate())

	book.Stock = -1
	require.Error(t, book.Validate())

	dep := Depart{Departid: "d1", Departname: "Engineering"}
	assert.NoError(t, dep.Validate())

	self := "d1"
	dep.ParentDepartid = &self
	err := dep.Validate()
	require.Error(t, err)
	assert.Equal(t, "parentdepartid", apperrors.GetField(err))
}
