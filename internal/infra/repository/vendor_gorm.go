package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type VendorGormRepository struct {
	db *gorm.DB
}

func NewVendorGormRepository(db *gorm.DB) *VendorGormRepository {
	return &VendorGormRepository{db: db}
}

func (r *VendorGormRepository) FindByID(ctx context.Context, vendorID int64) (model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", vendorID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *VendorGormRepository) UpdateApproval(ctx context.Context, vendorID int64, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.Vendor{}).
		Where("id = ?", vendorID).
		Update("is_approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
