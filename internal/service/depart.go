package service

import (
	"context"

	"github.com/openlibms/libms/internal/core"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

// DepartServiceOptions groups dependencies for DepartService.
type DepartServiceOptions struct {
	Departs core.DepartRepository
}

// DepartService orchestrates department management.
type DepartService struct {
	departs core.DepartRepository
}

// NewDepartService constructs a new DepartService.
func NewDepartService(opts DepartServiceOptions) *DepartService {
	return &DepartService{departs: opts.Departs}
}

// Create inserts a new department. A missing parent department surfaces as
// a foreign key error from the schema.
func (s *DepartService) Create(ctx context.Context, d *model.Depart) (*model.Depart, error) {
	if d == nil {
		return nil, apperrors.Validation("department is required")
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s.departs.Create(ctx, d)
}

// GetByID retrieves a department by departid.
func (s *DepartService) GetByID(ctx context.Context, departid string) (*model.Depart, error) {
	return s.departs.GetByID(ctx, departid)
}

// List retrieves all departments.
func (s *DepartService) List(ctx context.Context) ([]*model.Depart, error) {
	return s.departs.List(ctx)
}

// Page retrieves one page of departments matching the keyword.
func (s *DepartService) Page(ctx context.Context, opts model.PageOptions) ([]*model.Depart, int64, error) {
	return s.departs.Page(ctx, opts)
}

// Update replaces a department's fields.
func (s *DepartService) Update(ctx context.Context, d *model.Depart) (*model.Depart, error) {
	if d == nil {
		return nil, apperrors.Validation("department is required")
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s.departs.Update(ctx, d)
}

// Delete removes a department by departid.
func (s *DepartService) Delete(ctx context.Context, departid string) error {
	return s.departs.Delete(ctx, departid)
}
