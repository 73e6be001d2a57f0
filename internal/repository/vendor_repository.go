package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type VendorRepository interface {
	FindByID(ctx context.Context, vendorID int64) (model.Vendor, error)
	UpdateApproval(ctx context.Context, vendorID int64, approved bool) error
}
