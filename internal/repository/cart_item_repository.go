package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CartItemRepository interface {
	// ProductとVendorをjoinして返す。added_at昇順で順序は決定的。
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID string, productID int64) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (int64, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// チェックアウトでグループ分の明細をまとめて消す
	DeleteByIDs(ctx context.Context, ids []int64) error
	DeleteByUserID(ctx context.Context, userID string) error
}
