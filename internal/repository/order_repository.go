package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

// order_numberのユニーク制約違反。生成し直してリトライする合図。
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

type OrderRepository interface {
	// Vendorをpreloadして返す
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	ListByVendorID(ctx context.Context, vendorID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// ステータス関連の列だけ更新（金額・order_numberは触らない）
	UpdateStatus(ctx context.Context, order model.Order) error
}
