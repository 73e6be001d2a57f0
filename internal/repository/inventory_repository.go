package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 在庫台帳。stock_quantityを触るのはここだけ。
type InventoryRepository interface {
	// 行ロック付きで現在庫を読む（チェックアウトの再チェック用）
	GetStockForUpdate(ctx context.Context, productID int64) (int64, error)

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫の現在値を設定（管理者）
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
