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

// 注文作成の通知（fire-and-forget）。失敗してもチェックアウトには影響させない。
type OrderNotifier interface {
	OrderCreated(email string, orderNumber string, totalAmount int64) error
}

type OrderUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	notifier OrderNotifier
	log      *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	notifier OrderNotifier,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, notifier: notifier, log: log}
}

type CheckoutInput struct {
	ShippingFirstName   string
	ShippingLastName    string
	ShippingAddress     string
	ShippingCity        string
	ShippingGovernorate model.Governorate
	ShippingPhone       string
	Notes               string
	PaymentMethod       model.PaymentMethod
}

type OrderItemOutput struct {
	ID         int64 `json:"id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
	UnitPrice  int64 `json:"unit_price"`
	TotalPrice int64 `json:"total_price"`
}

type OrderOutput struct {
	ID                  int64             `json:"id"`
	OrderNumber         string            `json:"order_number"`
	VendorID            int64             `json:"vendor_id"`
	VendorName          string            `json:"vendor_name"`
	SubTotal            int64             `json:"sub_total"`
	ShippingCost        int64             `json:"shipping_cost"`
	TotalAmount         int64             `json:"total_amount"`
	Status              string            `json:"status"`
	PaymentMethod       string            `json:"payment_method"`
	PaymentStatus       string            `json:"payment_status"`
	OrderDate           time.Time         `json:"order_date"`
	DeliveredAt         *time.Time        `json:"delivered_at,omitempty"`
	CancellationReason  *string           `json:"cancellation_reason,omitempty"`
	ShippingFirstName   string            `json:"shipping_first_name"`
	ShippingLastName    string            `json:"shipping_last_name"`
	ShippingAddress     string            `json:"shipping_address"`
	ShippingCity        string            `json:"shipping_city"`
	ShippingGovernorate string            `json:"shipping_governorate"`
	ShippingPhone       string            `json:"shipping_phone"`
	Items               []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"order_date"`
	ItemsCount  int       `json:"items_count"`
	VendorName  string    `json:"vendor_name"`
}

// Checkout はカートを注文に変換する。
// 全ベンダーグループを1つのTxで処理し、どこかで失敗したら全部ロールバック。
// 部分成功は無い。
func (u *OrderUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCheckoutInput(in); err != nil {
		return OrderOutput{}, err
	}

	var first OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カートのスナップショット取得
		lines, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return storeError(u.log, err)
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		groups := SplitByVendor(lines)

		// 全明細の在庫を現在値で再チェックする（スナップショットは信用しない）。
		// 1件でも足りなければここで中断、他ベンダー分も作らない。
		for _, g := range groups {
			for _, line := range g.Lines {
				stock, err := r.Inventory().GetStockForUpdate(ctx, line.ProductID)
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "product not found")
				}
				if err != nil {
					return storeError(u.log, err)
				}
				if stock < line.Quantity {
					return &InsufficientStockError{
						ProductID:   line.ProductID,
						ProductName: line.Product.Name,
						Available:   stock,
					}
				}
			}
		}

		now := time.Now().UTC()
		shippingCost := ShippingFee(in.ShippingGovernorate)

		for gi, g := range groups {
			// 小計は割引があれば割引価格で
			items := make([]model.OrderItem, 0, len(g.Lines))
			var subTotal int64
			for _, line := range g.Lines {
				unit := line.Product.EffectivePrice()
				items = append(items, model.OrderItem{
					ProductID:  line.ProductID,
					Quantity:   line.Quantity,
					UnitPrice:  unit,
					TotalPrice: unit * line.Quantity,
				})
				subTotal += unit * line.Quantity
			}

			order := model.Order{
				UserID:              userID,
				VendorID:            g.VendorID,
				SubTotal:            subTotal,
				ShippingCost:        shippingCost,
				TotalAmount:         subTotal + shippingCost,
				Status:              model.OrderStatusPending,
				PaymentMethod:       in.PaymentMethod,
				PaymentStatus:       model.PaymentStatusPending,
				OrderDate:           now,
				ShippingFirstName:   in.ShippingFirstName,
				ShippingLastName:    in.ShippingLastName,
				ShippingAddress:     in.ShippingAddress,
				ShippingCity:        in.ShippingCity,
				ShippingGovernorate: in.ShippingGovernorate,
				ShippingPhone:       in.ShippingPhone,
			}
			if in.Notes != "" {
				notes := in.Notes
				order.Notes = &notes
			}

			// order_numberが衝突したら作り直して入れ直す
			orderID, orderNumber, err := u.createWithOrderNumber(ctx, r, order, now)
			if err != nil {
				return err
			}
			order.ID = orderID
			order.OrderNumber = orderNumber

			if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
				return storeError(u.log, err)
			}

			// 在庫減算は注文作成と同じTxの中
			lineIDs := make([]int64, 0, len(g.Lines))
			for _, line := range g.Lines {
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
				if err != nil {
					return storeError(u.log, err)
				}
				if !ok {
					// ロック済みなので通常は起きない。起きたら全体を中断。
					return &InsufficientStockError{
						ProductID:   line.ProductID,
						ProductName: line.Product.Name,
						Available:   0,
					}
				}
				lineIDs = append(lineIDs, line.ID)
			}

			// 変換済みのカート明細を消す
			if err := r.CartItems().DeleteByIDs(ctx, lineIDs); err != nil {
				return storeError(u.log, err)
			}

			if gi == 0 {
				order.Vendor = g.Lines[0].Product.Vendor
				first = toOrderOutput(order, items)
			}
		}

		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.log.Info("order created",
		zap.String("order_number", first.OrderNumber),
		zap.String("user_id", userID),
	)

	// commit後の通知。失敗はログだけ、結果には影響させない。
	u.notifyOrderCreated(ctx, userID, first.OrderNumber, first.TotalAmount)

	return first, nil
}

// createWithOrderNumber は番号を生成して注文を入れる。
// ユニーク制約違反なら番号を作り直してリトライ（上限あり）。
func (u *OrderUsecase) createWithOrderNumber(ctx context.Context, r repo.TxRepos, order model.Order, now time.Time) (int64, string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber(now)
		orderID, err := r.Orders().Create(ctx, order)
		if errors.Is(err, repo.ErrDuplicateOrderNumber) {
			u.log.Warn("order number collision, regenerating",
				zap.String("order_number", order.OrderNumber),
			)
			continue
		}
		if err != nil {
			return 0, "", storeError(u.log, err)
		}
		return orderID, order.OrderNumber, nil
	}
	return 0, "", NewHTTPError(http.StatusConflict, "could not allocate order number")
}

func (u *OrderUsecase) notifyOrderCreated(ctx context.Context, userID string, orderNumber string, totalAmount int64) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user.Email == "" {
		u.log.Warn("skip order notification, no email",
			zap.String("user_id", userID),
			zap.String("order_number", orderNumber),
		)
		return
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				u.log.Error("order notification panicked", zap.Any("panic", rec))
			}
		}()
		if err := u.notifier.OrderCreated(user.Email, orderNumber, totalAmount); err != nil {
			u.log.Error("failed to send order confirmation",
				zap.String("order_number", orderNumber),
				zap.Error(err),
			)
		}
	}()
}

// GetOrder は本人の注文だけ返す。他人の注文は存在しない扱い。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID string, orderID int64) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
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
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(u.log, err)
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderListOutput, error) {
	if userID == "" {
		return []OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
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

// CancelOrder は顧客キャンセル。PENDING/CONFIRMEDの間だけ許可。
// 在庫戻しとステータス更新は同じTxで行う。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID string, orderID int64, reason string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "reason required")
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
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if o.Status != model.OrderStatusPending && o.Status != model.OrderStatusConfirmed {
			return NewHTTPError(http.StatusConflict, "can only cancel pending or confirmed orders")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(u.log, err)
		}

		// 在庫戻し
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return storeError(u.log, err)
			}
		}

		now := time.Now().UTC()
		o.Status = model.OrderStatusCancelled
		o.CancelledAt = &now
		o.CancellationReason = &reason

		if err := r.Orders().UpdateStatus(ctx, o); err != nil {
			return storeError(u.log, err)
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.log.Info("order cancelled by customer",
		zap.Int64("order_id", orderID),
		zap.String("user_id", userID),
	)
	return out, nil
}

func validateCheckoutInput(in CheckoutInput) error {
	if strings.TrimSpace(in.ShippingFirstName) == "" ||
		strings.TrimSpace(in.ShippingLastName) == "" ||
		strings.TrimSpace(in.ShippingAddress) == "" ||
		strings.TrimSpace(in.ShippingCity) == "" ||
		strings.TrimSpace(in.ShippingPhone) == "" ||
		in.ShippingGovernorate == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping details required")
	}

	switch in.PaymentMethod {
	case model.PaymentMethodCashOnDelivery,
		model.PaymentMethodCreditCard,
		model.PaymentMethodVodafoneCash,
		model.PaymentMethodInstaPay,
		model.PaymentMethodBankTransfer:
		return nil
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}
}

// DBやタイムアウトなどの基盤側エラー。
// 原因はここでログに残し、呼び出し側には503だけ返す。
func storeError(log *zap.Logger, err error) error {
	log.Error("store operation failed", zap.Error(err))
	return NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		VendorID:            o.VendorID,
		VendorName:          o.Vendor.StoreName,
		SubTotal:            o.SubTotal,
		ShippingCost:        o.ShippingCost,
		TotalAmount:         o.TotalAmount,
		Status:              string(o.Status),
		PaymentMethod:       string(o.PaymentMethod),
		PaymentStatus:       string(o.PaymentStatus),
		OrderDate:           o.OrderDate,
		DeliveredAt:         o.DeliveredAt,
		CancellationReason:  o.CancellationReason,
		ShippingFirstName:   o.ShippingFirstName,
		ShippingLastName:    o.ShippingLastName,
		ShippingAddress:     o.ShippingAddress,
		ShippingCity:        o.ShippingCity,
		ShippingGovernorate: string(o.ShippingGovernorate),
		ShippingPhone:       o.ShippingPhone,
		Items:               outItems,
	}
}

func toOrderListOutputs(ctx context.Context, log *zap.Logger, r repo.TxRepos, orders []model.Order) ([]OrderListOutput, error) {
	outs := make([]OrderListOutput, 0, len(orders))
	for _, o := range orders {
		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, storeError(log, err)
		}
		outs = append(outs, OrderListOutput{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			TotalAmount: o.TotalAmount,
			Status:      string(o.Status),
			OrderDate:   o.OrderDate,
			ItemsCount:  len(items),
			VendorName:  o.Vendor.StoreName,
		})
	}
	return outs, nil
}
