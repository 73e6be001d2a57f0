package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

// 出店審査の結果通知（fire-and-forget）
type VendorNotifier interface {
	VendorStatusDecision(email string, storeName string, approved bool, reason string) error
}

// 管理者による出店審査の確定
type VendorApprovalUsecase struct {
	vendors  repo.VendorRepository
	notifier VendorNotifier
	log      *zap.Logger
}

func NewVendorApprovalUsecase(vendors repo.VendorRepository, notifier VendorNotifier, log *zap.Logger) *VendorApprovalUsecase {
	return &VendorApprovalUsecase{vendors: vendors, notifier: notifier, log: log}
}

type VendorApprovalInput struct {
	Approved bool
	Reason   string
}

func (u *VendorApprovalUsecase) Decide(ctx context.Context, vendorID int64, in VendorApprovalInput) error {
	if vendorID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid vendor id")
	}
	reason := strings.TrimSpace(in.Reason)
	// 却下は理由必須
	if !in.Approved && reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	v, err := u.vendors.FindByID(ctx, vendorID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "vendor not found")
	}
	if err != nil {
		return storeError(u.log, err)
	}

	if err := u.vendors.UpdateApproval(ctx, vendorID, in.Approved); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "vendor not found")
		}
		return storeError(u.log, err)
	}

	u.log.Info("vendor approval decided",
		zap.Int64("vendor_id", vendorID),
		zap.Bool("approved", in.Approved),
	)

	// 通知の失敗は結果に影響させない
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				u.log.Error("vendor notification panicked", zap.Any("panic", rec))
			}
		}()
		if err := u.notifier.VendorStatusDecision(v.Email, v.StoreName, in.Approved, reason); err != nil {
			u.log.Error("failed to send vendor decision",
				zap.Int64("vendor_id", vendorID),
				zap.Error(err),
			)
		}
	}()

	return nil
}
