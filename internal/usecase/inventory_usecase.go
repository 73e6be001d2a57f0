package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

// 管理者による在庫の直接変更。
// 台帳を触る3つ目の操作なので、減算・戻しと同じTxの作法に乗せる。
type InventoryUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewInventoryUsecase(tx repo.TransactionManager, log *zap.Logger) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, log: log}
}

type SetStockInput struct {
	NewStock int64
	Reason   string
}

func (u *InventoryUsecase) SetStock(ctx context.Context, adminUserID string, productID int64, in SetStockInput) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.NewStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 現在値をロックして読み、差分を履歴に残す
		current, err := r.Inventory().GetStockForUpdate(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return storeError(u.log, err)
		}

		if err := r.Inventory().SetStock(ctx, productID, in.NewStock); err != nil {
			return storeError(u.log, err)
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: adminUserID,
			Delta:       in.NewStock - current,
			Reason:      reason,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return storeError(u.log, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	u.log.Info("stock set by admin",
		zap.Int64("product_id", productID),
		zap.Int64("new_stock", in.NewStock),
		zap.String("admin_user_id", adminUserID),
	)
	return nil
}
