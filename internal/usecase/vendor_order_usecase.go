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

// ベンダー側の注文操作（一覧とステータス更新）
type VendorOrderUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewVendorOrderUsecase(tx repo.TransactionManager, log *zap.Logger) *VendorOrderUsecase {
	return &VendorOrderUsecase{tx: tx, log: log}
}

type UpdateOrderStatusInput struct {
	Status             string
	CancellationReason string
}

func (u *VendorOrderUsecase) List(ctx context.Context, vendorID int64) ([]OrderListOutput, error) {
	if vendorID <= 0 {
		return []OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByVendorID(ctx, vendorID)
		if err != nil {
			return storeError(u.log, err)
		}
		outs, err = toOrderListOutputs(ctx, u.log, r, orders)
		return err
	})

	if err != nil {
		return []OrderListOutput{}, err
	}
	return outs, nil
}

// UpdateStatus はベンダーによるステータス更新。
// DELIVERED/CANCELLED/RETURNEDからの変更は拒否。
// CANCELLEDにするときは在庫戻しを同じTxで行う。
func (u *VendorOrderUsecase) UpdateStatus(ctx context.Context, vendorID int64, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if vendorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	switch newStatus {
	case model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
		model.OrderStatusReturned:
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return storeError(u.log, err)
		}
		// 他ベンダーの注文は存在しない扱い
		if o.VendorID != vendorID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(u.log, err)
		}

		// 終端ガード。同じステータスの再送でも拒否する。
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusConflict, "cannot update status of cancelled or delivered orders")
		}
		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			out = toOrderOutput(o, items)
			return nil
		}

		now := time.Now().UTC()
		o.Status = newStatus

		switch newStatus {
		case model.OrderStatusConfirmed:
			o.ConfirmedAt = &now
		case model.OrderStatusShipped:
			o.ShippedAt = &now
		case model.OrderStatusDelivered:
			// 配達完了で支払い済みにする
			o.DeliveredAt = &now
			o.PaymentStatus = model.PaymentStatusPaid
		case model.OrderStatusCancelled:
			o.CancelledAt = &now
			if reason := strings.TrimSpace(in.CancellationReason); reason != "" {
				o.CancellationReason = &reason
			}
			// 在庫戻しはステータス更新と同じTxの中
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return storeError(u.log, err)
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, o); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return storeError(u.log, err)
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.log.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.Int64("vendor_id", vendorID),
		zap.String("status", string(newStatus)),
	)
	return out, nil
}
